package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_JSONTagNames(t *testing.T) {
	type form struct {
		Title string `json:"title" validate:"required"`
	}

	err := ValidateStruct(&form{})
	assert.Error(t, err)
	// 错误信息使用 json 标签名
	assert.Contains(t, err.Error(), "title")
}

func TestSentimentRule(t *testing.T) {
	type form struct {
		Sentiment string `json:"sentiment" validate:"sentiment"`
	}

	assert.NoError(t, ValidateStruct(&form{Sentiment: "happy"}))
	assert.NoError(t, ValidateStruct(&form{Sentiment: "sad"}))
	assert.NoError(t, ValidateStruct(&form{Sentiment: "neutral"}))
	assert.Error(t, ValidateStruct(&form{Sentiment: "stressed"}))
	assert.Error(t, ValidateStruct(&form{Sentiment: ""}))
}
