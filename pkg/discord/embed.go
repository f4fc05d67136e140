package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"apollo/internal/domain/entities"
	"apollo/pkg/tz"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor = 0x5865F2

	// MaxEmbedsPerMessage is Discord's limit on embeds in one message.
	MaxEmbedsPerMessage = 10
	// MaxEmbedCharsPerMessage caps the combined text of all embeds in one
	// message.
	MaxEmbedCharsPerMessage = 6000
)

// ListingLabels are the localized field names of an event embed.
type ListingLabels struct {
	Organizer string
	StartTime string
	Capacity  string
	Unlimited string
}

func formatCapacity(capacity int, unlimited string) string {
	if capacity == 0 {
		return unlimited
	}
	return fmt.Sprintf("%d", capacity)
}

// BuildEventEmbed renders one event of a channel listing.
func BuildEventEmbed(event entities.Event, labels ListingLabels) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       event.Title,
		Description: event.Description,
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: labels.Organizer, Value: fmt.Sprintf("<@%s>", event.OrganizerID), Inline: true},
			{Name: labels.Capacity, Value: formatCapacity(event.Capacity, labels.Unlimited), Inline: true},
			{Name: labels.StartTime, Value: FormatEventDateTime(event.StartTime, event.TimeZone)},
		},
		Timestamp: event.StartTime.UTC().Format(time.RFC3339),
	}
}

// BuildTimeZoneEmbed renders the numbered time zone menu with each zone's
// current UTC offset.
func BuildTimeZoneEmbed(title string, zones []string, now time.Time) *discordgo.MessageEmbed {
	var b strings.Builder
	for i, name := range zones {
		offset := ""
		if loc, err := tz.Location(name); err == nil {
			offset = " (UTC" + now.In(loc).Format("-07:00") + ")"
		}
		fmt.Fprintf(&b, "`%2d.` %s%s\n", i+1, name, offset)
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       embedColor,
	}
}

// EmbedLength counts the characters Discord charges against the per-message
// embed budget: title, description, field names and values, footer and author.
func EmbedLength(e *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	if e.Author != nil {
		n += utf8.RuneCountInString(e.Author.Name)
	}
	return n
}

// ChunkEmbeds splits embeds into groups that fit in one message each, both
// by count and by combined length.
func ChunkEmbeds(embeds []*discordgo.MessageEmbed) [][]*discordgo.MessageEmbed {
	var (
		out   [][]*discordgo.MessageEmbed
		chunk []*discordgo.MessageEmbed
		size  int
	)
	for _, e := range embeds {
		n := EmbedLength(e)
		if len(chunk) > 0 && (len(chunk) == MaxEmbedsPerMessage || size+n > MaxEmbedCharsPerMessage) {
			out = append(out, chunk)
			chunk, size = nil, 0
		}
		chunk = append(chunk, e)
		size += n
	}
	if len(chunk) > 0 {
		out = append(out, chunk)
	}
	return out
}
