package discord

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apollo/internal/domain"
	"apollo/internal/domain/entities"
)

var labels = ListingLabels{Organizer: "Organizer", StartTime: "Starts", Capacity: "Capacity", Unlimited: "Unlimited"}

func TestBuildEventEmbed(t *testing.T) {
	start := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	embed := BuildEventEmbed(entities.Event{
		Title:       "Board games",
		Description: "Bring snacks",
		Capacity:    12,
		OrganizerID: "42",
		TimeZone:    "America/New_York",
		StartTime:   start,
	}, labels)

	assert.Equal(t, "Board games", embed.Title)
	assert.Equal(t, "Bring snacks", embed.Description)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "<@42>", embed.Fields[0].Value)
	assert.Equal(t, "12", embed.Fields[1].Value)
	assert.Equal(t, "Mon 01 Jan 2024 17:00 (America/New_York)\n<t:1704146400:R>", embed.Fields[2].Value)
	assert.Equal(t, "2024-01-01T22:00:00Z", embed.Timestamp)
}

func TestBuildEventEmbed_Unlimited(t *testing.T) {
	embed := BuildEventEmbed(entities.Event{Title: "Open house", TimeZone: "UTC", StartTime: time.Now()}, labels)
	assert.Equal(t, "Unlimited", embed.Fields[1].Value)
	assert.Empty(t, embed.Description)
}

func TestBuildTimeZoneEmbed(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	embed := BuildTimeZoneEmbed("Time zones", []string{"UTC", "Asia/Kolkata", "America/New_York"}, now)

	lines := strings.Split(strings.TrimSpace(embed.Description), "\n")
	assert.Equal(t, []string{
		"` 1.` UTC (UTC+00:00)",
		"` 2.` Asia/Kolkata (UTC+05:30)",
		"` 3.` America/New_York (UTC-05:00)",
	}, lines)
}

func TestChunkEmbeds(t *testing.T) {
	var embeds []*discordgo.MessageEmbed
	for i := 0; i < 23; i++ {
		embeds = append(embeds, &discordgo.MessageEmbed{Title: fmt.Sprint(i)})
	}
	chunks := ChunkEmbeds(embeds)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 10)
	assert.Len(t, chunks[2], 3)
	assert.Equal(t, "22", chunks[2][2].Title)
	assert.Empty(t, ChunkEmbeds(nil))
}

func TestChunkEmbeds_RespectsCombinedLength(t *testing.T) {
	start := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC)
	var embeds []*discordgo.MessageEmbed
	for i := 0; i < 10; i++ {
		embeds = append(embeds, BuildEventEmbed(entities.Event{
			Title:       strings.Repeat("t", domain.MaxTitleLength),
			Description: strings.Repeat("é", domain.MaxDescriptionLength),
			Capacity:    domain.MaxCapacity,
			OrganizerID: "123456789012345678",
			TimeZone:    "America/Argentina/Buenos_Aires",
			StartTime:   start,
		}, labels))
	}

	chunks := ChunkEmbeds(embeds)
	require.Greater(t, len(chunks), 1)
	total := 0
	for _, chunk := range chunks {
		size := 0
		for _, e := range chunk {
			size += EmbedLength(e)
		}
		assert.LessOrEqual(t, size, MaxEmbedCharsPerMessage)
		total += len(chunk)
	}
	assert.Equal(t, 10, total)
	assert.Same(t, embeds[9], chunks[len(chunks)-1][len(chunks[len(chunks)-1])-1])
}

func TestChunkEmbeds_OversizedEmbedStandsAlone(t *testing.T) {
	big := &discordgo.MessageEmbed{Description: strings.Repeat("x", MaxEmbedCharsPerMessage)}
	small := &discordgo.MessageEmbed{Title: "small"}
	chunks := ChunkEmbeds([]*discordgo.MessageEmbed{small, big, small})
	require.Len(t, chunks, 3)
	assert.Equal(t, []*discordgo.MessageEmbed{big}, chunks[1])
}

func TestEmbedLength(t *testing.T) {
	e := &discordgo.MessageEmbed{
		Title:       "abc",
		Description: "été",
		Fields:      []*discordgo.MessageEmbedField{{Name: "n", Value: "vv"}},
		Footer:      &discordgo.MessageEmbedFooter{Text: "f"},
	}
	assert.Equal(t, 10, EmbedLength(e))
}

func TestErrorKey(t *testing.T) {
	assert.Equal(t, "event.invalid_capacity", ErrorKey(domain.ErrInvalidCapacity))
	assert.Equal(t, "event.start_time_in_the_past", ErrorKey(fmt.Errorf("start: %w", domain.ErrStartTimeInPast)))
	assert.Equal(t, "error.missing_permissions", ErrorKey(domain.ErrMissingPermissions))
	assert.Equal(t, "error.generic", ErrorKey(errors.New("connection refused")))
}
