// internal/services/timeline_service.go
package services

import (
	"time"

	"memories-backend/internal/models"
)

// TimelineBucket 按月聚合的情绪统计，每次请求现算，不落库
type TimelineBucket struct {
	Month   string `json:"month"`
	Happy   int    `json:"happy"`
	Sad     int    `json:"sad"`
	Neutral int    `json:"neutral"`
	Total   int    `json:"total"`
}

// SentimentStats 全量的情绪计数
type SentimentStats struct {
	Happy   int `json:"happy"`
	Sad     int `json:"sad"`
	Neutral int `json:"neutral"`
	Total   int `json:"total"`
}

// AggregateTimeline 把回忆按自然月分桶：起点取最早一条回忆所在月，
// 但最多回溯到 now 往前 11 个月；终点为 now 所在月。月末取当月最后一瞬，
// 边界时间归入当月。对固定的 now 和同一组输入，输出与遍历顺序无关。
func AggregateTimeline(memories []models.Memory, now time.Time) []TimelineBucket {
	if len(memories) == 0 {
		return []TimelineBucket{}
	}

	earliest := memories[0].CreatedAt
	for _, m := range memories {
		if m.CreatedAt.Before(earliest) {
			earliest = m.CreatedAt
		}
	}

	oldestAllowed := startOfMonth(now).AddDate(0, -11, 0)
	start := startOfMonth(earliest)
	if start.Before(oldestAllowed) {
		start = oldestAllowed
	}
	end := startOfMonth(now)

	var buckets []TimelineBucket
	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		monthEnd := month.AddDate(0, 1, 0).Add(-time.Nanosecond)

		bucket := TimelineBucket{Month: month.Format("Jan 06")}
		for _, m := range memories {
			if m.CreatedAt.Before(month) || m.CreatedAt.After(monthEnd) {
				continue
			}
			switch m.EffectiveSentiment() {
			case models.SentimentHappy:
				bucket.Happy++
			case models.SentimentSad:
				bucket.Sad++
			default:
				bucket.Neutral++
			}
			bucket.Total++
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}

// CountSentiments 统计每种情绪的总量，缺失情绪按 neutral 计
func CountSentiments(memories []models.Memory) SentimentStats {
	stats := SentimentStats{Total: len(memories)}
	for _, m := range memories {
		switch m.EffectiveSentiment() {
		case models.SentimentHappy:
			stats.Happy++
		case models.SentimentSad:
			stats.Sad++
		default:
			stats.Neutral++
		}
	}
	return stats
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
