// Package retry provides exponential backoff for transient failures.
//
// An operation is retried only while its error classifies as transient
// (see the errors package); invalid input and fatal stream errors return
// on the first attempt. The weather fetch is the main consumer: the
// past-weather API rate-limits free keys, so a short backoff usually
// clears a throttled request without operator involvement.
//
// Usage:
//
//	readings, err := retry.DoWithResult(ctx, retry.DefaultConfig(),
//		func() ([]payload.SensorData, error) {
//			return client.PastWeather(ctx, from, to)
//		})
package retry
