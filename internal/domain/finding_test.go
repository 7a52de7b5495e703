package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindingTypeParsing(t *testing.T) {
	for _, findingType := range FindingTypes() {
		parsed, err := ParseFindingType(string(findingType))
		require.NoError(t, err)
		assert.Equal(t, findingType, parsed)
	}

	_, err := ParseFindingType("")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = DecodeFindingType("TYPO")
	assert.True(t, errors.Is(err, ErrDataCorruption))
}

func TestSeverityLevelParsing(t *testing.T) {
	for _, severity := range SeverityLevels() {
		parsed, err := ParseSeverityLevel(string(severity))
		require.NoError(t, err)
		assert.Equal(t, severity, parsed)
	}

	_, err := ParseSeverityLevel("high")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = DecodeSeverityLevel("BLOCKER")
	assert.True(t, errors.Is(err, ErrDataCorruption))
}

func TestFinding_IsPublished(t *testing.T) {
	commentID := int64(42)

	assert.False(t, (&Finding{}).IsPublished())
	assert.True(t, (&Finding{CommentID: &commentID}).IsPublished())
}
