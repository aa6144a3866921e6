package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readability
var (
	DB             string // connection string for the database
	GeminiAPIKey   string // API key for the Gemini model
	GeminiModel    string // model id used for chat completions
	ReferenceDir   string // directory containing the reference data json files
	LogLevel       string // sets the log level (zap log level values)
	SQLLogLevel    string // sets the log level for sql subsystem
	LogFormat      string // text vs json
	MaxToolRounds  int    // max model/tool rounds per user turn
	TurnBudget     string // wall clock budget for a single user turn
	ToolTimeout    string // timeout for a single tool call
	MaxHistory     int    // max conversation turns kept per conversation (0 = unbounded)
	SystemPrompt   string // override for the bot system instructions
	DBMaxConns     int    // max connections for the database pool
)
