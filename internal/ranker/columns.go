package ranker

// playerKeepCols is the curated player column set handed to the narrative
// step after merging the two player feeds. Everything else from the
// provider is noise for broadcast prep.
var playerKeepCols = []string{
	"playerId", "gs", "mins", "poss", "plusMinus", "orb", "drb", "reb", "blkd", "tf", "pitp", "scp",
	"fbpts", "tsa", "minsPg", "ptsScoredPg", "ftaPg", "astPg", "orbPg", "drbPg", "rebPg", "pfdPg", "tfPg", "scpPg",
	"pitpPg", "fbptsPg", "blkdPg", "tovPg", "ftaRate", "ftmRate", "orbPct", "drbPct", "rebPct", "astTov", "astPct",
	"astRatio", "blkPct", "blkdPerFga", "pfdPerFga", "stlPct", "tovPct", "stlTov", "pfEff", "stlPerPf", "blkPerPf",
	"scpPctPts", "fbptsPctPts", "pitpPctPts", "ftmPctPts", "fgm2PctPts", "fgm3PctPts", "vps", "hkmPct", "astUsage",
	"per", "warp", "ortgPlayer", "drtgPlayer", "ws", "ows", "dws", "rapm", "orapm", "drapm", "fullName", "height",
	"position", "classYr", "ptsScored", "ptsCreated", "nbaFgm3", "nbaFga3", "ast", "ast3", "ast2", "fga", "fga2",
	"fga3", "fgm", "fgm2", "fgm3", "astdPts", "ptsAstd", "rim3sFgmA", "rim3sFgmU", "rim3sAst", "lane2FgmA",
	"lane2FgmU", "lane2Ast", "fgmA", "fgm2A", "fgm3A", "dunkFgmA", "fgmU", "fgm2U", "fgm3U", "dunkFgmU", "ftm",
	"fta", "orbFg", "orbFt", "drbFg", "drbFt", "shotAtt", "shotAtt2P", "shotAtt3P", "pf", "pfd", "sflDrawn", "and1",
	"stl", "blk", "tov", "gp", "fgPct", "fg2Pct", "fg3Pct", "efgPct", "fga3Rate", "goodTakeRate", "rim3sFgPct",
	"rim3sFgaFreq", "rim3sFgaPg", "lane2FgPct", "lane2FgaFreq", "lane2FgaPg", "atr2FgPct", "paint2FgPct",
	"mid2FgPct", "c3FgPct", "atb3FgPct", "ftPct", "dunkFgPct", "layupFgPct", "usagePct", "isQualified",
	"isQualArray", "tsPct", "ttsPct", "conferenceId",
}

// quadDropCols are administrative per-game columns excluded from quad-split
// output: identifiers, win/loss counters, and polling data are not
// statistics to rank or narrate.
var quadDropCols = []string{
	"overallWins", "overallLosses", "leagueId", "competitionId", "gameId", "teamId", "homeId",
	"conferenceId", "divisionId", "teamIdAgst", "conferenceIdAgst", "divisionIdAgst",
	"apPollAgst", "teamGameRecency", "netRankAgst", "confWins", "confLosses",
}

// internalCols are flags stripped from every ranked table before it crosses
// the narrative boundary.
var internalCols = []string{"isQualified", "isQualArray"}
