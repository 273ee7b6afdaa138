// Package metigan provides a Go client SDK for Metigan, an email delivery
// and contact management service.
//
// Basic usage:
//
//	client, err := metigan.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Email().SendEmail(ctx, &metigan.EmailMessage{
//	    From:       "Sender <sender@example.com>",
//	    Recipients: []string{"recipient@example.com"},
//	    Subject:    "Welcome!",
//	    Content:    "<h1>Hello!</h1>",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Sent to", result.RecipientCount, "recipients")
//
// Resources are reached through [Client.Email], [Client.Contacts],
// [Client.Audiences], [Client.Templates] and [Client.Forms]. Every operation
// takes a context and returns either a result or an [*Error] whose Kind tells
// validation failures, timeouts, network errors and API errors apart:
//
//	if errors.Is(err, metigan.ErrContactNotFound) {
//	    // ...
//	}
//
// Transient failures (network errors, timeouts, 429 and 5xx responses) are
// retried with a constant delay; see [WithRetryCount] and [WithRetryDelay].
package metigan
