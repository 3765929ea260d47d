// Package cloudinary provides a client for the parts of the Cloudinary
// Admin API used by the Boomerverse services.
//
// # Overview
//
// The client searches image assets by tag and builds delivery URLs for
// them. Search results are paged by Cloudinary; [SearchService.ByTag]
// follows the continuation cursor until the last page and returns every
// asset in response order.
//
// # Authentication
//
// Admin API calls use HTTP Basic authentication with the account's API
// key and secret. Delivery URLs are public and need no credentials.
//
// # Errors
//
// A page request that returns a non-2xx status yields an *UpstreamError.
// Search is all-or-nothing: assets collected from earlier pages are
// discarded when a later page fails.
//
// Example usage:
//
//	client, err := cloudinary.NewClient(cloudinary.Config{
//	    CloudName: "demo",
//	    APIKey:    "your-api-key",
//	    APISecret: "your-api-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resources, err := client.Search().ByTag(ctx, "engage", 500)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range resources {
//	    fmt.Println(client.DirectLink(r.PublicID, r.Format))
//	}
package cloudinary
