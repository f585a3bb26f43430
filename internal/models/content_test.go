package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentDataScanMalformedPayload(t *testing.T) {
	var data ContentData
	require.NoError(t, data.Scan([]byte(`{not json`)))
	assert.Equal(t, ContentData{}, data)
}

func TestContentDataScanNull(t *testing.T) {
	data := ContentData{Category: "stale"}
	require.NoError(t, data.Scan(nil))
	assert.Equal(t, ContentData{}, data)
}

func TestContentDataScanString(t *testing.T) {
	var data ContentData
	require.NoError(t, data.Scan(`{"category":"IIT","subject":"Math"}`))
	assert.Equal(t, "IIT", data.Category)
	assert.Equal(t, "Math", data.Subject)
}

func TestDeriveSectionKind(t *testing.T) {
	assert.Equal(t, SectionKindStudyMaterial, DeriveSectionKind("Study Material"))
	assert.Equal(t, SectionKindStudyMaterial, DeriveSectionKind("Free STUDY MATERIAL hub"))
	assert.Equal(t, SectionKindFlat, DeriveSectionKind("Announcements"))
}

func TestCategoryClassRangeIsKnown(t *testing.T) {
	assert.True(t, IsKnownCategory(CategoryClassRange))
	assert.False(t, IsKnownClass("7"))
	assert.False(t, IsKnownSubject("Sanskrit"))
}
