package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/creamy-cogs/league-live-tracker/internal/config"
	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
	"github.com/creamy-cogs/league-live-tracker/internal/storage"
	"github.com/creamy-cogs/league-live-tracker/internal/tracker"
)

// Bot represents the Discord bot and holds references to its dependencies.
type Bot struct {
	session    *discordgo.Session
	storage    *storage.Storage
	riotClient *riotapi.Client
	tracker    *tracker.Tracker
	cfg        *config.Config
	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
}

// New creates and initializes a new Bot instance.
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}

	riotClient := riotapi.NewClient(cfg.RiotAPIKey)

	ctx, cancel := context.WithCancel(context.Background())

	announcer := NewAnnouncer(session, riotClient, cfg.DiscordOwnerID)

	bot := &Bot{
		session:    session,
		storage:    store,
		riotClient: riotClient,
		tracker:    tracker.New(riotClient, store, announcer, riotClient),
		cfg:        cfg,
		ctx:        ctx,
		cancel:     cancel,
	}

	return bot, nil
}

// Run starts the bot and sets up event handlers. It blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func (b *Bot) Run() error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Msg("Bot is now ready")
		if err := b.registerCommandsOnce(); err != nil {
			log.Error().Err(err).Msg("Failed to register commands")
		}

		b.mu.Lock()
		for _, guild := range r.Guilds {
			if err := b.storage.AddGuild(guild.ID, guild.Name); err != nil {
				log.Error().Err(err).Str("guild_id", guild.ID).Msg("Error adding guild to database")
			}
		}
		b.mu.Unlock()
		log.Info().Msg("Initial guild setup complete")

		// Champion metadata must be loaded before the first announcement
		// is built, so priming happens before the loop starts.
		if err := b.riotClient.PrimeChampionData(); err != nil {
			log.Warn().Err(err).Msg("Could not prime champion data, names resolve lazily")
		}

		b.tracker.Start(b.ctx)
	})

	b.session.AddHandler(b.handleGuildCreate)
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	return b.Shutdown()
}

var commandsRegistered = false
var commandsMu sync.Mutex

// registerCommandsOnce registers Discord slash commands for the bot.
// It ensures commands are only registered once to avoid duplication.
func (b *Bot) registerCommandsOnce() error {
	commandsMu.Lock()
	defer commandsMu.Unlock()

	if commandsRegistered {
		return nil
	}

	// Every command operates on guild state, so none of them make sense in a
	// direct message.
	dmPermission := false

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Link a League of Legends account to your Discord user for live-match announcements",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "riot-id",
					Description: "The Riot ID of the account, as Name#Tag",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "region",
					Description: "The region the account plays on (na, euw, kr, ...)",
					Required:    false,
				},
			},
		},
		{
			Name:        "unregister",
			Description: "Remove a registered League of Legends account from this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "riot-id",
					Description: "The Riot ID of the account to remove, as Name#Tag",
					Required:    true,
				},
			},
		},
		{
			Name:        "toggle-polling",
			Description: "Turn live-match announcements for your registered accounts on or off",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether your accounts should be polled",
					Required:    true,
				},
			},
		},
		{
			Name:        "channel",
			Description: "Use the current channel for live-match announcements",
		},
		{
			Name:        "unchannel",
			Description: "Stop using the configured channel for live-match announcements",
		},
		{
			Name:        "tracking",
			Description: "Enable or disable live-match tracking for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether accounts registered in this server should be polled",
					Required:    true,
				},
			},
		},
		{
			Name:        "list",
			Description: "List all League of Legends accounts registered in this server",
		},
		{
			Name:        "riot-key",
			Description: "Set the Riot API key and resume polling (bot owner only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "key",
					Description: "The new Riot API key",
					Required:    true,
				},
			},
		},
	}

	for _, v := range commands {
		v.DMPermission = &dmPermission
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", v)
		if err != nil {
			log.Error().Err(err).Str("command", v.Name).Msg("Cannot create command")
			return err
		}
	}

	commandsRegistered = true
	return nil
}

// handleGuildCreate is called when the bot joins a new Discord guild (server).
// It adds the guild to the database so it can be configured for tracking.
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if err := b.storage.AddGuild(g.ID, g.Name); err != nil {
		log.Error().Err(err).Str("guild_id", g.ID).Msg("Error adding new guild to database")
		return
	}

	log.Info().Str("guild", g.Name).Str("guild_id", g.ID).Msg("Added new guild to database")
}

// Shutdown gracefully stops the bot and closes all resources.
// Returns an error if closing the Discord session or storage fails.
func (b *Bot) Shutdown() error {
	log.Info().Msg("Shutting down...")
	b.cancel()
	b.tracker.Stop()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing Discord session: %w", err)
	}

	if err := b.storage.Close(); err != nil {
		return fmt.Errorf("error closing storage: %w", err)
	}

	return nil
}
