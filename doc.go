// Package predev is a Go client for the Pre.dev Architect API, which
// generates software specifications from text prompts.
//
// The API offers two generation endpoints: fast specs (seconds-scale, suited
// to MVPs and prototypes) and deep specs (minutes-scale, enterprise-grade
// depth). Both can run asynchronously, in which case the response carries a
// spec ID to poll with [Client.GetSpecStatus]. Previously generated specs can
// be paged with [Client.ListSpecs] and searched with [Client.FindSpecs].
//
// Create a client with your API key from the pre.dev settings page:
//
//	client, err := predev.New(os.Getenv("PREDEV_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.FastSpec(ctx, predev.SpecRequest{
//		Input: "Build a task management app with team collaboration",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.HumanSpecURL())
//
// Enterprise accounts authenticate with a different header; pass
// [WithEnterprise] to select it.
//
// Failures surface as typed errors: [AuthenticationError] for 401,
// [RateLimitError] for 429, and [APIError] for everything else including
// transport failures. Both specific types unwrap to *APIError, so callers can
// catch broadly or narrowly with errors.As. The client never retries; retry
// and polling policy belongs to the caller.
//
// A Client is stateless after construction and safe for concurrent use.
package predev
