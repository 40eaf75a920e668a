package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	riotapi "github.com/creamy-cogs/league-live-tracker/internal/riot-api"
	"github.com/creamy-cogs/league-live-tracker/internal/storage"
)

// authNotifiedFlag is the persisted marker that the owner was already told
// about a rejected credential, so a process restart does not notify twice.
const authNotifiedFlag = "notified_owner_invalid_riot_key"

// GameSource answers "is this account in a live match" and resolves champion
// metadata. Implemented by the riot-api client.
type GameSource interface {
	GetActiveGame(region, puuid string) (*riotapi.CurrentGameInfo, error)
	Champions() (map[int64]riotapi.Champion, error)
}

// Credentials reports whether an API credential is currently available.
// Checked before every external call so that a suspended loop stops issuing
// doomed requests.
type Credentials interface {
	APIKey() (string, bool)
}

// Store is the persistence surface the tracker depends on.
type Store interface {
	TrackedGuilds() ([]storage.Guild, error)
	OptedInSummoners(guildID string) ([]storage.Summoner, error)
	CountOptedIn() (int, error)
	GetActiveGame(guildID string, summonerID int) (*storage.ActiveGame, error)
	SaveActiveGame(game *storage.ActiveGame) error
	ClearActiveGame(guildID string, summonerID int) error
	WasGamePosted(guildID, gameKey string) (bool, error)
	MarkGamePosted(guildID, gameKey string) error
	GetFlag(key string) (bool, error)
	SetFlag(key string, value bool) error
}

// Notifier posts and edits announcements and reaches the bot owner.
type Notifier interface {
	AnnounceGameStart(channelID string, start *GameStart) (messageID string, err error)
	AnnounceGameEnd(game *storage.ActiveGame, summonerName string) error
	NotifyOwner(message string) error
}

// Tracker runs the live-match poll loop. One instance owns all per-process
// polling state: the cached cooldown, the auth-failure suspension and the
// once-per-guild missing-channel warnings.
type Tracker struct {
	games    GameSource
	store    Store
	notifier Notifier
	creds    Credentials

	mu              sync.Mutex
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	cooldown        time.Duration
	authSuspended   bool
	noChannelWarned map[string]bool
}

// New wires a Tracker with its collaborators. Champion metadata and the API
// credential are expected to be in place before Start is called.
func New(games GameSource, store Store, notifier Notifier, creds Credentials) *Tracker {
	return &Tracker{
		games:           games,
		store:           store,
		notifier:        notifier,
		creds:           creds,
		noChannelWarned: make(map[string]bool),
	}
}

// Start launches the poll loop in the background. It returns immediately.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(loopCtx)
	}()
}

// Stop cancels the poll loop and waits for the current iteration to wind
// down. An account mid-poll finishes its classification; the rest of the
// iteration is abandoned.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	t.wg.Wait()
}

// Restart stops the loop, lifts the auth-failure suspension and starts the
// loop again. Called after the Riot API credential has been rotated.
func (t *Tracker) Restart(ctx context.Context) {
	t.Stop()

	t.mu.Lock()
	t.authSuspended = false
	t.mu.Unlock()

	if err := t.store.SetFlag(authNotifiedFlag, false); err != nil {
		log.Error().Err(err).Msg("Could not clear the credential notification flag")
	}

	log.Info().Msg("Credential updated, resuming live-match polling")
	t.Start(ctx)
}

// Suspended reports whether polling is currently halted by an auth failure.
func (t *Tracker) Suspended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.authSuspended
}

// CurrentCooldown returns the most recently computed sleep interval.
func (t *Tracker) CurrentCooldown() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cooldown
}

// RefreshCooldown recomputes the poll interval from the current opted-in
// account count and caches it as the next sleep duration. Called at the top
// of every loop iteration, and by the bot whenever a registration or opt-in
// change could have altered the count.
func (t *Tracker) RefreshCooldown() time.Duration {
	count, err := t.store.CountOptedIn()
	if err != nil {
		// A failed count must not shrink the interval below what the real
		// account population needs, so the cached value stands.
		t.mu.Lock()
		interval := t.cooldown
		t.mu.Unlock()
		if interval <= 0 {
			interval = time.Duration(Cooldown(0) * float64(time.Second))
		}
		log.Error().Err(err).Msg("Could not count opted-in accounts, keeping the previous cooldown")
		return interval
	}

	seconds := Cooldown(count)
	interval := time.Duration(seconds * float64(time.Second))

	t.mu.Lock()
	t.cooldown = interval
	t.mu.Unlock()

	log.Debug().Int("accounts", count).Float64("cooldown_seconds", seconds).Msg("Cooldown refreshed")
	return interval
}

func (t *Tracker) run(ctx context.Context) {
	log.Info().Msg("Live-match poll loop started")
	for {
		interval := t.iterate(ctx)

		select {
		case <-ctx.Done():
			log.Info().Msg("Live-match poll loop stopped")
			return
		case <-time.After(interval):
		}
	}
}

// iterate visits every tracked guild and every opted-in summoner once, and
// returns the interval to sleep before the next iteration.
func (t *Tracker) iterate(ctx context.Context) time.Duration {
	interval := t.RefreshCooldown()

	if t.Suspended() {
		return interval
	}

	guilds, err := t.store.TrackedGuilds()
	if err != nil {
		log.Error().Err(err).Msg("Could not enumerate tracked guilds")
		return interval
	}

	for _, guild := range guilds {
		if ctx.Err() != nil {
			return interval
		}

		if guild.ChannelID == "" {
			t.warnMissingChannel(guild)
			continue
		}

		summoners, err := t.store.OptedInSummoners(guild.ID)
		if err != nil {
			log.Error().Err(err).Str("guild", guild.ID).Msg("Could not enumerate opted-in summoners")
			continue
		}

		for _, summoner := range summoners {
			if ctx.Err() != nil || t.Suspended() {
				return interval
			}
			t.pollSummoner(guild, summoner)
		}
	}

	return interval
}

// pollSummoner classifies one spectator lookup and applies the matching state
// transition. Failures local to this summoner never abort the iteration.
func (t *Tracker) pollSummoner(guild storage.Guild, summoner storage.Summoner) {
	if _, ok := t.creds.APIKey(); !ok {
		t.suspendPolling("no Riot API key is configured")
		return
	}

	game, err := t.games.GetActiveGame(summoner.Region, summoner.PUUID)
	switch {
	case err != nil && riotapi.IsUnauthorizedError(err):
		// Must not be mistaken for "not in a match": an expired key says
		// nothing about the summoner's state.
		t.suspendPolling("the Riot API rejected the configured key")
	case err != nil:
		log.Warn().Err(err).Str("summoner", summoner.Name).Msg("Spectator lookup failed, skipping this iteration")
	case game == nil:
		t.handleNotInGame(guild, summoner)
	default:
		t.handleInGame(guild, summoner, game)
	}
}

// handleNotInGame finalizes the tracked match, if any.
func (t *Tracker) handleNotInGame(guild storage.Guild, summoner storage.Summoner) {
	record, err := t.store.GetActiveGame(guild.ID, summoner.ID)
	if err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not read active game record")
		return
	}
	if record == nil {
		return
	}

	t.finalizeGame(summoner, record)
}

// handleInGame applies the in-game transitions: idempotent skip for the match
// already being tracked, end-then-start when the match changed, fresh
// announcement otherwise.
func (t *Tracker) handleInGame(guild storage.Guild, summoner storage.Summoner, game *riotapi.CurrentGameInfo) {
	record, err := t.store.GetActiveGame(guild.ID, summoner.ID)
	if err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not read active game record")
		return
	}

	if record != nil {
		if record.GameID == game.GameID {
			return
		}
		// The summoner moved straight into a different match; close out the
		// previous one before announcing the new one.
		t.finalizeGame(summoner, record)
	}

	if !Qualifies(game) {
		log.Debug().Str("summoner", summoner.Name).Int64("game", game.GameID).
			Str("mode", game.GameMode).Str("type", game.GameType).Msg("Match does not qualify for announcement")
		return
	}

	gameKey := PostedGameKey(game.GameID, summoner.PUUID)
	posted, err := t.store.WasGamePosted(guild.ID, gameKey)
	if err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not check posted games")
		return
	}
	if posted {
		return
	}

	start, err := t.buildGameStart(summoner, game)
	if err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not resolve match details")
		return
	}

	messageID, err := t.notifier.AnnounceGameStart(guild.ChannelID, start)
	if err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Str("guild", guild.ID).Msg("Could not announce match start")
		return
	}

	record = &storage.ActiveGame{
		GuildID:       guild.ID,
		SummonerID:    summoner.ID,
		GameID:        game.GameID,
		StartedAt:     start.StartedAt,
		Champion:      start.Champion,
		ChampionImage: start.ChampionImage,
		BlueTeam:      start.BlueTeam,
		RedTeam:       start.RedTeam,
		ChannelID:     guild.ChannelID,
		MessageID:     messageID,
	}
	if err := t.store.SaveActiveGame(record); err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not persist active game record")
	}
	if err := t.store.MarkGamePosted(guild.ID, gameKey); err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not record posted game key")
	}

	log.Info().Str("summoner", summoner.Name).Int64("game", game.GameID).Str("guild", guild.ID).Msg("Announced match start")
}

// finalizeGame edits the original announcement to reflect game over and
// clears the record. The record is cleared even when the edit fails, so a
// deleted announcement message cannot wedge the state machine.
func (t *Tracker) finalizeGame(summoner storage.Summoner, record *storage.ActiveGame) {
	if err := t.notifier.AnnounceGameEnd(record, summoner.Name); err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Int64("game", record.GameID).Msg("Could not finalize announcement")
	}
	if err := t.store.ClearActiveGame(record.GuildID, record.SummonerID); err != nil {
		log.Error().Err(err).Str("summoner", summoner.Name).Msg("Could not clear active game record")
		return
	}

	log.Info().Str("summoner", summoner.Name).Int64("game", record.GameID).Msg("Match ended")
}

func (t *Tracker) buildGameStart(summoner storage.Summoner, game *riotapi.CurrentGameInfo) (*GameStart, error) {
	champions, err := t.games.Champions()
	if err != nil {
		return nil, fmt.Errorf("error loading champion metadata: %w", err)
	}

	start := &GameStart{
		SummonerName: summoner.Name,
		GameMode:     game.GameMode,
		StartedAt:    time.Now(),
	}
	if game.GameStartTime > 0 {
		start.StartedAt = time.UnixMilli(game.GameStartTime)
	}

	for _, p := range game.Participants {
		champion, ok := champions[p.ChampionID]
		if !ok {
			champion = fallbackChampion(p.ChampionID)
		}

		switch p.TeamID {
		case blueTeamID:
			start.BlueTeam = append(start.BlueTeam, champion.Name)
		case redTeamID:
			start.RedTeam = append(start.RedTeam, champion.Name)
		}

		if p.PUUID == summoner.PUUID {
			start.Champion = champion.Name
			start.ChampionImage = champion.ImageKey
		}
	}

	return start, nil
}

// fallbackChampion fills in for an id missing from the champion list, which
// can happen right after a patch introduces a new champion.
func fallbackChampion(id int64) riotapi.Champion {
	name := fmt.Sprintf("Champion %d", id)
	return riotapi.Champion{Name: name, ImageKey: name}
}

// suspendPolling halts all external calls and notifies the owner once. The
// suspension is lifted only by Restart, after a new credential is supplied.
func (t *Tracker) suspendPolling(reason string) {
	t.mu.Lock()
	if t.authSuspended {
		t.mu.Unlock()
		return
	}
	t.authSuspended = true
	t.mu.Unlock()

	log.Warn().Str("reason", reason).Msg("Suspending live-match polling")

	notified, err := t.store.GetFlag(authNotifiedFlag)
	if err != nil {
		log.Error().Err(err).Msg("Could not read the credential notification flag")
	}
	if notified {
		return
	}

	message := fmt.Sprintf(
		"Live-match polling has been suspended: %s. "+
			"Set a fresh key from https://developer.riotgames.com with the /riot-key command to resume.",
		reason)
	if err := t.notifier.NotifyOwner(message); err != nil {
		log.Error().Err(err).Msg("Could not notify the owner about the rejected credential")
		return
	}
	if err := t.store.SetFlag(authNotifiedFlag, true); err != nil {
		log.Error().Err(err).Msg("Could not persist the credential notification flag")
	}
}

// warnMissingChannel tells the owner once per guild that tracking is enabled
// without an announcement channel. The guild is skipped, not aborted.
func (t *Tracker) warnMissingChannel(guild storage.Guild) {
	t.mu.Lock()
	warned := t.noChannelWarned[guild.ID]
	t.noChannelWarned[guild.ID] = true
	t.mu.Unlock()

	if warned {
		return
	}

	log.Warn().Str("guild", guild.ID).Msg("Tracking enabled but no announcement channel configured, skipping guild")
	message := fmt.Sprintf(
		"Server %q has live-match tracking enabled but no announcement channel. "+
			"Use /channel in the channel that should receive announcements.", guild.Name)
	if err := t.notifier.NotifyOwner(message); err != nil {
		log.Error().Err(err).Str("guild", guild.ID).Msg("Could not notify the owner about the missing channel")
	}
}
