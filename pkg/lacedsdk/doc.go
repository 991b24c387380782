/*
Package lacedsdk is a Go client for the laced storefront API, and the home of
the wire types the server encodes.

# Client

A Client behaves like a single browser: it keeps the auth_session and
guest_session cookies the server sets and never follows redirects, so the
gate's decisions are visible to the caller.

	client := lacedsdk.NewClient("http://localhost:8080")

	// Register, which also signs in
	res, err := client.SignUp(ctx, lacedsdk.SignUpRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correcthorse",
	})

	// Who am I?
	sess, err := client.Session(ctx)

	// Browse the catalog
	products, err := client.ListProducts(ctx, lacedsdk.ProductQuery{Category: "Running"})

	// Pages are JSON views guarded by the gate
	page, err := client.Page(ctx, "/account")
	var redirect *lacedsdk.RedirectError
	if errors.As(err, &redirect) {
		fmt.Println("sign in first:", redirect.Location)
	}

# Errors

Failed calls return *APIError. The predefined values match with errors.Is by
code:

	_, err := client.SignUp(ctx, req)
	if errors.Is(err, lacedsdk.ErrDuplicateEmail) {
		// ask the user to sign in instead
	}

Validation failures carry per-field messages in APIError.Fields.
*/
package lacedsdk
