package services

import (
	"testing"
	"time"

	"memories-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mem(sentiment models.Sentiment, createdAt time.Time) models.Memory {
	return models.Memory{Content: "x", Sentiment: sentiment, CreatedAt: createdAt}
}

func TestAggregateTimeline_Empty(t *testing.T) {
	buckets := AggregateTimeline(nil, time.Now())
	assert.Empty(t, buckets)

	buckets = AggregateTimeline([]models.Memory{}, time.Now())
	assert.Empty(t, buckets)
}

func TestAggregateTimeline_SingleMonth(t *testing.T) {
	now := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	memories := []models.Memory{
		mem(models.SentimentHappy, time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)),
		mem(models.SentimentSad, time.Date(2024, time.January, 20, 18, 0, 0, 0, time.UTC)),
	}

	buckets := AggregateTimeline(memories, now)
	require.Len(t, buckets, 1)
	assert.Equal(t, "Jan 24", buckets[0].Month)
	assert.Equal(t, 1, buckets[0].Happy)
	assert.Equal(t, 1, buckets[0].Sad)
	assert.Equal(t, 0, buckets[0].Neutral)
	assert.Equal(t, 2, buckets[0].Total)
}

func TestAggregateTimeline_WindowClampedToTwelveMonths(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	memories := []models.Memory{
		// 远超窗口的老记录不会撑大桶的数量
		mem(models.SentimentHappy, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)),
		mem(models.SentimentNeutral, now.AddDate(0, -1, 0)),
	}

	buckets := AggregateTimeline(memories, now)
	assert.Len(t, buckets, 12)
	assert.Equal(t, "Jul 23", buckets[0].Month)
	assert.Equal(t, "Jun 24", buckets[len(buckets)-1].Month)

	// 窗口外的记录不计入任何桶
	total := 0
	for _, b := range buckets {
		total += b.Total
	}
	assert.Equal(t, 1, total)
}

func TestAggregateTimeline_ShortSpan(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	memories := []models.Memory{
		mem(models.SentimentHappy, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)),
	}

	buckets := AggregateTimeline(memories, now)
	require.Len(t, buckets, 3) // Apr, May, Jun
	assert.Equal(t, "Apr 24", buckets[0].Month)
	assert.Equal(t, "Jun 24", buckets[2].Month)
}

func TestAggregateTimeline_BucketSumsMatchTotals(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	memories := []models.Memory{
		mem(models.SentimentHappy, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)),
		mem(models.SentimentSad, time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)),
		mem(models.SentimentNeutral, time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)),
		mem("", time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)), // 缺失情绪按 neutral 计
		mem(models.SentimentHappy, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}

	buckets := AggregateTimeline(memories, now)

	grandTotal := 0
	for _, b := range buckets {
		assert.Equal(t, b.Total, b.Happy+b.Sad+b.Neutral, "bucket %s", b.Month)
		grandTotal += b.Total
	}
	assert.Equal(t, len(memories), grandTotal)
}

func TestAggregateTimeline_MonthEndBoundaryInclusive(t *testing.T) {
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	// 1月最后一瞬仍属于1月
	lastInstant := time.Date(2024, time.January, 31, 23, 59, 59, 999999999, time.UTC)
	memories := []models.Memory{mem(models.SentimentHappy, lastInstant)}

	buckets := AggregateTimeline(memories, now)
	require.Len(t, buckets, 2)
	assert.Equal(t, 1, buckets[0].Total)
	assert.Equal(t, "Jan 24", buckets[0].Month)
	assert.Equal(t, 0, buckets[1].Total)
}

func TestAggregateTimeline_OrderIndependent(t *testing.T) {
	now := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	a := mem(models.SentimentHappy, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	b := mem(models.SentimentSad, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	c := mem(models.SentimentNeutral, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	forward := AggregateTimeline([]models.Memory{a, b, c}, now)
	backward := AggregateTimeline([]models.Memory{c, b, a}, now)
	assert.Equal(t, forward, backward)
}

func TestCountSentiments(t *testing.T) {
	stats := CountSentiments([]models.Memory{
		mem(models.SentimentHappy, time.Now()),
		mem(models.SentimentHappy, time.Now()),
		mem(models.SentimentSad, time.Now()),
		mem("", time.Now()),
	})

	assert.Equal(t, 2, stats.Happy)
	assert.Equal(t, 1, stats.Sad)
	assert.Equal(t, 1, stats.Neutral)
	assert.Equal(t, 4, stats.Total)
}
