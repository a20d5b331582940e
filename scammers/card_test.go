package scammers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/scammer-blacklist/models"
)

func TestNewCardEmptyProfileRendersNothing(t *testing.T) {
	_, ok := NewCard(models.ScammerProfile{ID: "s1", ProfileLink: "linkedin.com/in/x"}, true, "me")
	assert.False(t, ok)
}

func TestNewCardSingleReport(t *testing.T) {
	created := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	profile := models.ScammerProfile{
		ID:          "s1",
		ProfileLink: "linkedin.com/in/jane-doe",
		Reports: []models.Report{{
			ID:        "r1",
			Name:      "Jane",
			ScamType:  "made-up",
			Notes:     "asked me to run a repo",
			CreatedAt: created,
		}},
	}

	card, ok := NewCard(profile, false, "")
	require.True(t, ok)
	assert.Equal(t, "jane-doe", card.Handle)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", card.ProfileURL)
	assert.Equal(t, 1, card.ReportCount)
	assert.False(t, card.HasMultiple)
	assert.Empty(t, card.Reports)
	assert.Equal(t, UnknownUser, card.Primary.Author)
	assert.Equal(t, Classify("other"), card.Primary.Badge)
	assert.Equal(t, "Mar 5, 2024", card.Primary.Date)
	assert.NotEmpty(t, card.Primary.Ago)
	assert.False(t, card.CanDelete())
}

func TestNewCardOwnViewFindsViewerReport(t *testing.T) {
	profile := models.ScammerProfile{
		ID:          "s1",
		ProfileLink: "https://www.linkedin.com/in/bob/",
		Reports:     []models.Report{report("r1", "a"), report("r2", "me")},
	}

	card, ok := NewCard(profile, true, "me")
	require.True(t, ok)
	assert.True(t, card.CanDelete())
	assert.Equal(t, "r2", card.OwnReport.ID)
	assert.Equal(t, "r2", card.Primary.ID)
	assert.True(t, card.HasMultiple)
	require.Len(t, card.Reports, 2)
	assert.Equal(t, "r1", card.Reports[0].ID)
	assert.Equal(t, "user-a", card.Reports[0].Author)
	assert.Empty(t, card.Reports[0].Date)
}

func TestNewCardOwnViewWithoutViewerReportHasNoDelete(t *testing.T) {
	profile := models.ScammerProfile{ID: "s1", Reports: []models.Report{report("r1", "a")}}

	card, ok := NewCard(profile, true, "me")
	require.True(t, ok)
	assert.Equal(t, "r1", card.Primary.ID)
	assert.Nil(t, card.OwnReport)
	assert.False(t, card.CanDelete())
}

func TestNewCardsSkipsEmptyProfiles(t *testing.T) {
	cards := NewCards([]models.ScammerProfile{
		{ID: "s1", Reports: []models.Report{report("r1", "a")}},
		{ID: "s2"},
		{ID: "s3", Reports: []models.Report{report("r3", "b")}},
	}, false, "")
	require.Len(t, cards, 2)
	assert.Equal(t, "s1", cards[0].ProfileID)
	assert.Equal(t, "s3", cards[1].ProfileID)
}
