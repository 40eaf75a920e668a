package storage

type SQLQuery string

const (
	// insert or update a guild into the guilds table
	insertNewGuildSQL SQLQuery = `
        INSERT INTO guilds (guild_id, guild_name, created_at, updated_at)
        VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
        ON CONFLICT (guild_id)
        DO UPDATE SET guild_name = $2, updated_at = CURRENT_TIMESTAMP
    `

	// insert or update a summoner into the summoners table
	insertSummonerSQL SQLQuery = `
    INSERT INTO summoners (
        name, discord_user_id, riot_account_id, riot_summoner_id,
        riot_summoner_puuid, region, opt_in, created_at, updated_at
    )
    VALUES ($1, $2, $3, $4, $5, $6, TRUE, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
    ON CONFLICT (riot_summoner_puuid) DO UPDATE SET
        name = EXCLUDED.name,
        discord_user_id = EXCLUDED.discord_user_id,
        riot_account_id = EXCLUDED.riot_account_id,
        riot_summoner_id = EXCLUDED.riot_summoner_id,
        region = EXCLUDED.region,
        updated_at = CURRENT_TIMESTAMP
    RETURNING id
    `

	// associate a summoner to a guild
	insertGuildSummonerAssociationSQL SQLQuery = `
    INSERT INTO guild_summoner_associations (guild_id, summoner_id, created_at)
    VALUES ($1, $2, CURRENT_TIMESTAMP)
    ON CONFLICT (guild_id, summoner_id) DO NOTHING
    `

	// delete an association of a summoner from a guild
	deleteSummonerSQL SQLQuery = `
        DELETE FROM guild_summoner_associations
        WHERE guild_id = $1 AND summoner_id IN (SELECT id FROM summoners WHERE LOWER(name) = LOWER($2))
    `

	// toggle polling for every account registered by a Discord user
	updateOptInByDiscordUserSQL SQLQuery = `
    UPDATE summoners
    SET opt_in = $2, updated_at = CURRENT_TIMESTAMP
    WHERE discord_user_id = $1
    `

	// select every summoner associated to a guild, in registration order
	selectAllSummonersForAGuildSQL SQLQuery = `
    SELECT s.id, s.name, s.discord_user_id, s.riot_account_id, s.riot_summoner_id,
           s.riot_summoner_puuid, s.region, s.opt_in
    FROM summoners s
    JOIN guild_summoner_associations gsa ON s.id = gsa.summoner_id
    WHERE gsa.guild_id = $1
    ORDER BY s.id
    `

	// select opted-in summoners associated to a guild, in registration order
	selectOptedInSummonersForAGuildSQL SQLQuery = `
    SELECT s.id, s.name, s.discord_user_id, s.riot_account_id, s.riot_summoner_id,
           s.riot_summoner_puuid, s.region, s.opt_in
    FROM summoners s
    JOIN guild_summoner_associations gsa ON s.id = gsa.summoner_id
    WHERE gsa.guild_id = $1 AND s.opt_in
    ORDER BY s.id
    `

	// count (guild, summoner) pairs that the poll loop will actually visit:
	// guild tracking enabled and summoner opted in
	countOptedInSQL SQLQuery = `
    SELECT COUNT(*)
    FROM guild_summoner_associations gsa
    JOIN guilds g ON g.guild_id = gsa.guild_id
    JOIN summoners s ON s.id = gsa.summoner_id
    WHERE g.tracking_enabled AND s.opt_in
    `

	// select guilds with tracking enabled, in creation order
	selectTrackedGuildsSQL SQLQuery = `
    SELECT guild_id, guild_name, channel_id, tracking_enabled
    FROM guilds
    WHERE tracking_enabled
    ORDER BY created_at, guild_id
    `

	// update the channel id of a guild
	updateGuildWithChannelIDSQL SQLQuery = `
    UPDATE guilds
    SET channel_id = $2, updated_at = CURRENT_TIMESTAMP
    WHERE guild_id = $1
    `

	// remove the attributed announcement channel from a guild
	removeChannelFromGuildSQL SQLQuery = `
    UPDATE guilds
    SET channel_id = NULL, updated_at = CURRENT_TIMESTAMP
    WHERE guild_id = $1 AND channel_id = $2
    `

	// enable or disable match tracking for a guild
	updateGuildTrackingSQL SQLQuery = `
    UPDATE guilds
    SET tracking_enabled = $2, updated_at = CURRENT_TIMESTAMP
    WHERE guild_id = $1
    `

	// fetch the active game record for one (guild, summoner) pair
	selectActiveGameSQL SQLQuery = `
    SELECT game_id, started_at, champion, champion_image, blue_team, red_team,
           channel_id, message_id
    FROM active_games
    WHERE guild_id = $1 AND summoner_id = $2
    `

	// insert or replace the active game record for one (guild, summoner) pair
	upsertActiveGameSQL SQLQuery = `
    INSERT INTO active_games (
        guild_id, summoner_id, game_id, started_at, champion, champion_image,
        blue_team, red_team, channel_id, message_id
    )
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    ON CONFLICT (guild_id, summoner_id) DO UPDATE SET
        game_id = EXCLUDED.game_id,
        started_at = EXCLUDED.started_at,
        champion = EXCLUDED.champion,
        champion_image = EXCLUDED.champion_image,
        blue_team = EXCLUDED.blue_team,
        red_team = EXCLUDED.red_team,
        channel_id = EXCLUDED.channel_id,
        message_id = EXCLUDED.message_id
    `

	// clear the active game record for one (guild, summoner) pair
	deleteActiveGameSQL SQLQuery = `
    DELETE FROM active_games
    WHERE guild_id = $1 AND summoner_id = $2
    `

	// check whether a game was already announced in a guild
	selectPostedGameSQL SQLQuery = `
    SELECT EXISTS (
        SELECT 1 FROM posted_games WHERE guild_id = $1 AND game_key = $2
    )
    `

	// record that a game was announced in a guild
	insertPostedGameSQL SQLQuery = `
    INSERT INTO posted_games (guild_id, game_key, created_at)
    VALUES ($1, $2, CURRENT_TIMESTAMP)
    ON CONFLICT (guild_id, game_key) DO NOTHING
    `

	// read a process-wide boolean flag
	selectFlagSQL SQLQuery = `
    SELECT value FROM app_state WHERE key = $1
    `

	// set a process-wide boolean flag
	upsertFlagSQL SQLQuery = `
    INSERT INTO app_state (key, value, updated_at)
    VALUES ($1, $2, CURRENT_TIMESTAMP)
    ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = CURRENT_TIMESTAMP
    `
)
