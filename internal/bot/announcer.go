package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
	"github.com/creamy-cogs/league-live-tracker/internal/storage"
	"github.com/creamy-cogs/league-live-tracker/internal/tracker"
	"github.com/creamy-cogs/league-live-tracker/internal/utils"
)

const (
	colorGameStart = 0x00FF00 // Green
	colorGameEnd   = 0xFF0000 // Red
)

// Announcer posts live-match announcements and owner notifications through
// a Discord session. It implements tracker.Notifier.
type Announcer struct {
	session    *discordgo.Session
	riotClient *riotapi.Client
	ownerID    string
}

func NewAnnouncer(session *discordgo.Session, riotClient *riotapi.Client, ownerID string) *Announcer {
	return &Announcer{
		session:    session,
		riotClient: riotClient,
		ownerID:    ownerID,
	}
}

// AnnounceGameStart posts the match-start embed and returns the message id so
// the announcement can be edited when the match ends.
func (a *Announcer) AnnounceGameStart(channelID string, start *tracker.GameStart) (string, error) {
	embed := a.buildGameStartEmbed(start)

	message, err := a.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", fmt.Errorf("error sending embed message to channel %s: %w", channelID, err)
	}

	return message.ID, nil
}

// AnnounceGameEnd edits the original announcement to reflect game over.
func (a *Announcer) AnnounceGameEnd(game *storage.ActiveGame, summonerName string) error {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's game has ended.", summonerName),
		Color: colorGameEnd,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: a.championImageURL(game.ChampionImage),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Started %s", utils.FormatTime(game.StartedAt)),
		},
	}

	_, err := a.session.ChannelMessageEditEmbed(game.ChannelID, game.MessageID, embed)
	if err != nil {
		return fmt.Errorf("error editing announcement %s in channel %s: %w", game.MessageID, game.ChannelID, err)
	}

	return nil
}

// NotifyOwner sends a direct message to the configured bot owner.
func (a *Announcer) NotifyOwner(message string) error {
	if a.ownerID == "" {
		return fmt.Errorf("no owner configured (DISCORD_OWNER_ID), dropping notification: %s", message)
	}

	channel, err := a.session.UserChannelCreate(a.ownerID)
	if err != nil {
		return fmt.Errorf("error opening DM channel with owner %s: %w", a.ownerID, err)
	}

	if _, err := a.session.ChannelMessageSend(channel.ID, message); err != nil {
		return fmt.Errorf("error sending owner notification: %w", err)
	}

	return nil
}

func (a *Announcer) buildGameStartEmbed(start *tracker.GameStart) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s has started a %s game!", start.SummonerName, strings.ToLower(start.GameMode)),
		Color: colorGameStart,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: a.championImageURL(start.ChampionImage),
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Blue Team",
				Value:  teamField(start.BlueTeam),
				Inline: true,
			},
			{
				Name:   "Red Team",
				Value:  teamField(start.RedTeam),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Started %s", utils.FormatTime(start.StartedAt)),
		},
	}
}

func (a *Announcer) championImageURL(imageKey string) string {
	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s.png",
		a.riotClient.Version(), utils.ChampionNameMapper(imageKey, true))
}

func teamField(champions []string) string {
	if len(champions) == 0 {
		return "No teammates."
	}
	return strings.Join(champions, ", ")
}
