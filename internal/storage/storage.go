package storage

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/creamy-cogs/league-live-tracker/internal/config"
	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
)

//go:embed sql/init_db.sql
var initDBSQL string

type Storage struct {
	db *sql.DB
}

// Guild is one Discord server known to the bot.
type Guild struct {
	ID              string
	Name            string
	ChannelID       string // empty when no announcement channel is configured
	TrackingEnabled bool
}

// Summoner is one registered League account.
type Summoner struct {
	ID             int
	Name           string // riot id, "gameName#tagLine"
	DiscordUserID  string
	RiotAccountID  string
	RiotSummonerID string
	PUUID          string
	Region         string
	OptIn          bool
}

// ActiveGame is the persisted record of a live match currently being tracked
// for one summoner in one guild. Its presence is the sole signal that the
// summoner is considered in-game.
type ActiveGame struct {
	GuildID       string
	SummonerID    int
	GameID        int64
	StartedAt     time.Time
	Champion      string
	ChampionImage string
	BlueTeam      []string
	RedTeam       []string
	ChannelID     string
	MessageID     string
}

// New creates and initializes a new Storage instance connected to the specified PostgreSQL database
func New(config *config.Config) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUsername, config.DBPassword, config.DBDatabase)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	storage := &Storage{db: db}
	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	return storage, nil
}

func (s *Storage) initDB() error {
	_, err := s.db.Exec(initDBSQL)
	if err != nil {
		return fmt.Errorf("error executing init_db.sql: %w", err)
	}

	log.Info().Msg("Database initialized successfully")
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// AddGuild adds or updates a guild row in the database.
func (s *Storage) AddGuild(guildID, guildName string) error {
	_, err := s.db.Exec(string(insertNewGuildSQL), guildID, guildName)
	return err
}

// AddSummoner adds or updates a summoner and associates it with a guild.
// Re-registration overwrites the existing record for the same puuid.
func (s *Storage) AddSummoner(guildID, discordUserID, name, region string, summoner riotapi.Summoner) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var summonerID int
	err = tx.QueryRow(string(insertSummonerSQL),
		name, discordUserID, summoner.RiotAccountID, summoner.RiotSummonerID,
		summoner.PUUID, region).Scan(&summonerID)
	if err != nil {
		return fmt.Errorf("insert/update summoner: %w", err)
	}

	_, err = tx.Exec(string(insertGuildSummonerAssociationSQL), guildID, summonerID)
	if err != nil {
		return fmt.Errorf("insert guild-summoner association: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// RemoveSummoner removes a summoner's association with a guild.
func (s *Storage) RemoveSummoner(guildID, name string) error {
	result, err := s.db.Exec(string(deleteSummonerSQL), guildID, name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("summoner %q is not tracked in this server", name)
	}

	return nil
}

// SetOptIn toggles polling for every account registered by a Discord user.
func (s *Storage) SetOptIn(discordUserID string, optIn bool) (int, error) {
	result, err := s.db.Exec(string(updateOptInByDiscordUserSQL), discordUserID, optIn)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error getting rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

// ListSummoners returns every summoner associated to a guild in registration order.
func (s *Storage) ListSummoners(guildID string) ([]Summoner, error) {
	return s.querySummoners(selectAllSummonersForAGuildSQL, guildID)
}

// OptedInSummoners returns the guild's summoners that currently participate
// in polling, in registration order.
func (s *Storage) OptedInSummoners(guildID string) ([]Summoner, error) {
	return s.querySummoners(selectOptedInSummonersForAGuildSQL, guildID)
}

func (s *Storage) querySummoners(query SQLQuery, guildID string) ([]Summoner, error) {
	rows, err := s.db.Query(string(query), guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summoners []Summoner
	for rows.Next() {
		var sm Summoner
		if err := rows.Scan(
			&sm.ID, &sm.Name, &sm.DiscordUserID, &sm.RiotAccountID,
			&sm.RiotSummonerID, &sm.PUUID, &sm.Region, &sm.OptIn,
		); err != nil {
			return nil, err
		}
		summoners = append(summoners, sm)
	}

	return summoners, rows.Err()
}

// CountOptedIn counts the (guild, summoner) pairs the poll loop visits:
// associations whose guild has tracking enabled and whose summoner is opted
// in. This is the input of the cooldown calculation.
func (s *Storage) CountOptedIn() (int, error) {
	var count int
	err := s.db.QueryRow(string(countOptedInSQL)).Scan(&count)
	return count, err
}

// TrackedGuilds returns guilds with tracking enabled in creation order.
func (s *Storage) TrackedGuilds() ([]Guild, error) {
	rows, err := s.db.Query(string(selectTrackedGuildsSQL))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guilds []Guild
	for rows.Next() {
		var g Guild
		var channelID sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &channelID, &g.TrackingEnabled); err != nil {
			return nil, err
		}
		g.ChannelID = channelID.String
		guilds = append(guilds, g)
	}

	return guilds, rows.Err()
}

// SetGuildChannel sets the announcement channel for a guild.
func (s *Storage) SetGuildChannel(guildID, channelID string) error {
	_, err := s.db.Exec(string(updateGuildWithChannelIDSQL), guildID, channelID)
	return err
}

// RemoveChannelFromGuild removes the association between a channel and a guild.
func (s *Storage) RemoveChannelFromGuild(guildID, channelID string) error {
	result, err := s.db.Exec(string(removeChannelFromGuildSQL), guildID, channelID)
	if err != nil {
		return fmt.Errorf("error removing channel from guild association: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no association found for this guild and channel")
	}

	return nil
}

// SetGuildTracking enables or disables live-match tracking for a guild.
func (s *Storage) SetGuildTracking(guildID string, enabled bool) error {
	_, err := s.db.Exec(string(updateGuildTrackingSQL), guildID, enabled)
	return err
}

// GetActiveGame retrieves the tracked live match for a (guild, summoner)
// pair, or nil when the summoner is not currently tracked as in-game.
func (s *Storage) GetActiveGame(guildID string, summonerID int) (*ActiveGame, error) {
	game := ActiveGame{GuildID: guildID, SummonerID: summonerID}
	var blueTeam, redTeam []byte

	err := s.db.QueryRow(string(selectActiveGameSQL), guildID, summonerID).Scan(
		&game.GameID, &game.StartedAt, &game.Champion, &game.ChampionImage,
		&blueTeam, &redTeam, &game.ChannelID, &game.MessageID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(blueTeam, &game.BlueTeam); err != nil {
		return nil, fmt.Errorf("error decoding blue team: %w", err)
	}
	if err := json.Unmarshal(redTeam, &game.RedTeam); err != nil {
		return nil, fmt.Errorf("error decoding red team: %w", err)
	}

	return &game, nil
}

// SaveActiveGame inserts or replaces the tracked live match for a
// (guild, summoner) pair. At most one record exists per pair.
func (s *Storage) SaveActiveGame(game *ActiveGame) error {
	blueTeam, err := json.Marshal(game.BlueTeam)
	if err != nil {
		return fmt.Errorf("error encoding blue team: %w", err)
	}
	redTeam, err := json.Marshal(game.RedTeam)
	if err != nil {
		return fmt.Errorf("error encoding red team: %w", err)
	}

	_, err = s.db.Exec(string(upsertActiveGameSQL),
		game.GuildID, game.SummonerID, game.GameID, game.StartedAt,
		game.Champion, game.ChampionImage, blueTeam, redTeam,
		game.ChannelID, game.MessageID)
	return err
}

// ClearActiveGame removes the tracked live match for a (guild, summoner) pair.
func (s *Storage) ClearActiveGame(guildID string, summonerID int) error {
	_, err := s.db.Exec(string(deleteActiveGameSQL), guildID, summonerID)
	return err
}

// WasGamePosted reports whether a game was already announced in a guild.
func (s *Storage) WasGamePosted(guildID, gameKey string) (bool, error) {
	var posted bool
	err := s.db.QueryRow(string(selectPostedGameSQL), guildID, gameKey).Scan(&posted)
	return posted, err
}

// MarkGamePosted records that a game was announced in a guild.
func (s *Storage) MarkGamePosted(guildID, gameKey string) error {
	_, err := s.db.Exec(string(insertPostedGameSQL), guildID, gameKey)
	return err
}

// GetFlag reads a process-wide boolean flag, defaulting to false.
func (s *Storage) GetFlag(key string) (bool, error) {
	var value bool
	err := s.db.QueryRow(string(selectFlagSQL), key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return value, err
}

// SetFlag sets a process-wide boolean flag.
func (s *Storage) SetFlag(key string, value bool) error {
	_, err := s.db.Exec(string(upsertFlagSQL), key, value)
	return err
}
