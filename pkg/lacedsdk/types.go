package lacedsdk

// ============================================================================
// Auth Types
// ============================================================================

// UserSummary is the public view of a user. Password hashes never appear in
// any response.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignUpRequest is the body of POST /v1/auth/sign-up.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the body of POST /v1/auth/sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Redirect is an optional path to return to after signing in. It is
	// echoed back as RedirectTo once sanitised.
	Redirect string `json:"redirect,omitempty"`
}

// AuthResponse is returned by sign-up, sign-in and sign-out.
type AuthResponse struct {
	Success    bool         `json:"success"`
	User       *UserSummary `json:"user,omitempty"`
	RedirectTo string       `json:"redirect_to,omitempty"`
}

// SessionResponse is returned by GET /v1/auth/session. User is nil when the
// request carries no valid session.
type SessionResponse struct {
	User *UserSummary `json:"user"`
}

// ============================================================================
// Catalog Types
// ============================================================================

// Product is a catalog entry. Price is a decimal string such as "150.00".
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	InStock     int    `json:"in_stock"`
	CreatedAt   string `json:"created_at"`
}

// ProductListResponse is returned by GET /v1/products. Count is the number
// of matches ignoring paging.
type ProductListResponse struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data"`
	Count   int       `json:"count"`
}

// ProductResponse is returned by GET /v1/products/{id}.
type ProductResponse struct {
	Success bool    `json:"success"`
	Data    Product `json:"data"`
}

// ProductQuery filters a product listing. Zero values are omitted.
type ProductQuery struct {
	Brand         string
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
	InStockOnly   bool
	Sort          string
	Limit         int
	Offset        int
}

// ============================================================================
// Page Types
// ============================================================================

// Viewer describes who is looking at a page.
type Viewer struct {
	Authenticated bool         `json:"authenticated"`
	User          *UserSummary `json:"user,omitempty"`
	Guest         bool         `json:"guest"`
}

// PageResponse is the JSON view behind each storefront page.
type PageResponse struct {
	Page     string       `json:"page"`
	Viewer   Viewer       `json:"viewer"`
	Products []Product    `json:"products,omitempty"`
	Product  *Product     `json:"product,omitempty"`
	User     *UserSummary `json:"user,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains dependency status details (only present in /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
