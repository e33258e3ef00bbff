package retry

import "time"

// WaitOptions 等待后端就绪的预设：指数退避，不限次数，总时长 maxElapsed
// maxElapsed <= 0 时只尝试一次
func WaitOptions(maxElapsed time.Duration, onRetry func(attempt int, err error, delay time.Duration)) []Option {
	if maxElapsed <= 0 {
		return []Option{MaxAttempts(1)}
	}
	return []Option{
		MaxAttempts(0),
		MaxElapsed(maxElapsed),
		Backoff(ExponentialBackoff(200*time.Millisecond, WithMaxDelay(2*time.Second))),
		OnRetry(onRetry),
	}
}
