package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
	"github.com/creamy-cogs/league-live-tracker/internal/utils"
)

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Interactions arriving outside a guild carry no member. The commands are
	// registered without DM permission, but a delivered DM invocation must
	// still get an answer instead of a nil dereference.
	if i.Member == nil || i.Member.User == nil {
		respondWithError(s, i, "This command can only be used in a server.")
		return
	}

	switch i.ApplicationCommandData().Name {
	case "register":
		b.handleRegister(s, i)
	case "unregister":
		b.handleUnregister(s, i)
	case "toggle-polling":
		b.handleTogglePolling(s, i)
	case "channel":
		b.handleChannel(s, i)
	case "unchannel":
		b.handleUnchannel(s, i)
	case "tracking":
		b.handleTracking(s, i)
	case "list":
		b.handleList(s, i)
	case "riot-key":
		b.handleRiotKey(s, i)
	}
}

// Register a League account for the invoking Discord user in this guild.
func (b *Bot) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondWithError(s, i, "Please provide a Riot ID.")
		return
	}

	riotID := strings.TrimSpace(options[0].StringValue())
	parts := strings.SplitN(riotID, "#", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		log.Warn().Str("riot_id", riotID).Msg("Invalid Riot ID format")
		respondWithError(s, i, "Invalid Riot ID format. Please use Name#Tag.")
		return
	}

	gameName := strings.TrimSpace(parts[0])
	tagLine := strings.TrimSpace(parts[1])

	region := b.cfg.DefaultRegion
	if len(options) > 1 {
		region = strings.TrimSpace(strings.ToLower(options[1].StringValue()))
	}
	if !riotapi.ValidRegion(region) {
		respondWithError(s, i, fmt.Sprintf("Unknown region '%s'. Known regions: %s.",
			region, strings.Join(riotapi.Regions(), ", ")))
		return
	}

	account, err := b.lookupAccount(gameName, tagLine)
	if err != nil {
		if riotapi.IsNotFoundError(err) {
			respondWithError(s, i, fmt.Sprintf("No Riot account found for '%s#%s'.", gameName, tagLine))
			return
		}
		log.Error().Err(err).Str("riot_id", riotID).Msg("Error getting account info")
		respondWithError(s, i, "Unable to look up the account right now. Please try again later.")
		return
	}

	summoner, err := b.riotClient.GetSummonerByPUUID(region, account.PUUID)
	if err != nil {
		log.Error().Err(err).Str("riot_id", riotID).Msg("Error getting summoner info")
		respondWithError(s, i, fmt.Sprintf("No summoner found for '%s' on %s.", account.RiotID(), region))
		return
	}

	rankInfo, err := b.riotClient.GetSummonerRank(region, summoner.RiotSummonerID)
	if err != nil {
		log.Error().Err(err).Str("riot_id", riotID).Msg("Error fetching summoner rank data")
		respondWithError(s, i, "Error fetching summoner rank data. Please try again later.")
		return
	}

	userID := i.Member.User.ID
	if err := b.storage.AddSummoner(i.GuildID, userID, account.RiotID(), region, *summoner); err != nil {
		log.Error().Err(err).Msg("Error adding summoner to database")
		respondWithError(s, i, "An error occurred while saving the account. Please try again later.")
		return
	}

	b.tracker.RefreshCooldown()

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{registrationEmbed(account.RiotID(), region, summoner, rankInfo)},
		},
	})
}

// lookupAccount resolves a Riot ID, retrying transparently when the Riot API
// throttles us. Any other failure aborts the retry loop immediately.
func (b *Bot) lookupAccount(gameName, tagLine string) (*riotapi.Account, error) {
	var account *riotapi.Account

	operation := func() error {
		var err error
		account, err = b.riotClient.GetAccountByRiotID(gameName, tagLine)
		if err != nil {
			if riotapi.IsRateLimitError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)); err != nil {
		return nil, err
	}

	return account, nil
}

func registrationEmbed(riotID, region string, summoner *riotapi.Summoner, rank *riotapi.LeagueEntry) *discordgo.MessageEmbed {
	description := fmt.Sprintf("'%s' (Level %d, %s) is now registered in this server.",
		riotID, summoner.SummonerLevel, strings.ToUpper(region))

	rankLine := "Unranked"
	if !strings.EqualFold(rank.Tier, "UNRANKED") {
		winRate := utils.CalculateWinRate(rank.Wins, rank.Losses)
		rankLine = fmt.Sprintf("%s %s %d LP (%.1f%% winrate)",
			utils.CapitalizeFirst(strings.ToLower(rank.Tier)), rank.Rank, rank.LeaguePoints, winRate)
	}

	return &discordgo.MessageEmbed{
		Title:       "Account registered",
		Description: description,
		Color:       utils.GetRankColor(rank.Tier),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Current Rank", Value: rankLine},
		},
	}
}

// Remove a registered account from the guild.
func (b *Bot) handleUnregister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondWithError(s, i, "Please provide a Riot ID.")
		return
	}

	riotID := strings.TrimSpace(options[0].StringValue())

	if err := b.storage.RemoveSummoner(i.GuildID, riotID); err != nil {
		log.Error().Err(err).Str("riot_id", riotID).Msg("Error removing summoner")
		respondWithError(s, i, fmt.Sprintf("'%s' is not registered in this server.", riotID))
		return
	}

	b.tracker.RefreshCooldown()

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("'%s' has been removed from this server.", riotID),
		},
	})
}

// Flip the per-user polling opt-in across every account the user registered.
func (b *Bot) handleTogglePolling(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondWithError(s, i, "Please say whether polling should be enabled.")
		return
	}

	enabled := options[0].BoolValue()
	userID := i.Member.User.ID

	updated, err := b.storage.SetOptIn(userID, enabled)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Error updating polling opt-in")
		respondWithError(s, i, "An error occurred while updating your polling preference. Please try again later.")
		return
	}

	if updated == 0 {
		respondWithError(s, i, "You have no registered accounts. Use `/register` first.")
		return
	}

	b.tracker.RefreshCooldown()

	state := "off"
	if enabled {
		state = "on"
	}
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Polling is now %s for %d of your account(s).", state, updated),
		},
	})
}

// Use the current channel for announcements in this guild.
func (b *Bot) handleChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.storage.SetGuildChannel(i.GuildID, i.ChannelID); err != nil {
		log.Error().Err(err).Str("guild_id", i.GuildID).Msg("Error setting announcement channel")
		respondWithError(s, i, "An error occurred while setting the channel. Please try again later.")
		return
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Live-match announcements will be posted in this channel.",
		},
	})
}

// Remove channel_id from the guild record so a new one can be picked.
func (b *Bot) handleUnchannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.storage.RemoveChannelFromGuild(i.GuildID, i.ChannelID); err != nil {
		log.Error().Err(err).Str("guild_id", i.GuildID).Msg("Error removing channel association")
		respondWithError(s, i, "An error occurred while removing the channel association. Please try again later.")
		return
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "This channel won't be used for announcements anymore. Type `/channel` in another channel to set a new one.",
		},
	})
}

// Enable or disable tracking for the whole guild.
func (b *Bot) handleTracking(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondWithError(s, i, "Please say whether tracking should be enabled.")
		return
	}

	enabled := options[0].BoolValue()
	if err := b.storage.SetGuildTracking(i.GuildID, enabled); err != nil {
		log.Error().Err(err).Str("guild_id", i.GuildID).Msg("Error updating guild tracking")
		respondWithError(s, i, "An error occurred while updating tracking. Please try again later.")
		return
	}

	b.tracker.RefreshCooldown()

	content := "Live-match tracking is now disabled for this server."
	if enabled {
		content = "Live-match tracking is now enabled for this server. Use `/channel` to pick the announcement channel."
	}
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

// List every account registered in the guild with its polling state.
func (b *Bot) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	summoners, err := b.storage.ListSummoners(i.GuildID)
	if err != nil {
		log.Error().Err(err).Str("guild_id", i.GuildID).Msg("Error listing summoners")
		respondWithError(s, i, "An error occurred while retrieving the list of accounts. Please try again later.")
		return
	}

	var content string
	if len(summoners) == 0 {
		content = "No accounts are currently registered in this server."
	} else {
		for _, summoner := range summoners {
			polling := "polling off"
			if summoner.OptIn {
				polling = "polling on"
			}
			content += fmt.Sprintf("- %s (%s, %s) registered by <@%s>\n",
				utils.CapitalizeFirst(summoner.Name), strings.ToUpper(summoner.Region), polling, summoner.DiscordUserID)
		}
	}

	chunks := utils.ChunkMessage(content, 2000)

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: chunks[0],
		},
	})

	for _, chunk := range chunks[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: chunk}); err != nil {
			log.Error().Err(err).Msg("Error sending list continuation")
			return
		}
	}
}

// Rotate the Riot API key and resume polling. Owner only.
func (b *Bot) handleRiotKey(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID
	if b.cfg.DiscordOwnerID == "" || userID != b.cfg.DiscordOwnerID {
		respondWithError(s, i, "Only the bot owner can set the Riot API key.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondWithError(s, i, "Please provide an API key.")
		return
	}

	key := strings.TrimSpace(options[0].StringValue())
	if key == "" {
		respondWithError(s, i, "The API key cannot be empty.")
		return
	}

	b.riotClient.SetAPIKey(key)
	b.tracker.Restart(b.ctx)

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Riot API key updated, polling resumed.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// generate an ephemeral error message that is only shown to the user that typed a command
func respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
