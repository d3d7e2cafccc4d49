/*
Package resilience provides a circuit breaker.

The archive layer runs every rewrite through a Breaker so that a failing
disk makes writes fail fast instead of leaving a trail of half-written
temp files. Only errors the IsFailure setting accepts count; a rejected
name or a path conflict is the caller's problem, not the disk's.

	breaker := resilience.New("archive-writes", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: func(err error) bool {
			return errors.Is(err, archive.ErrWriteFailed)
		},
	})

	err := breaker.Do(func() error {
		return rewrite()
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open
*/
package resilience
