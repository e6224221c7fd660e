package settings

// Setting keys
const (
	KeyDefaultAccount        = "default_account"
	KeyPipelineSlowMs        = "pipeline_slow_ms"
	KeyHolidaySyncYearsAhead = "holiday_sync_years_ahead"
	KeyCalendarMarket        = "calendar_market"
)

// SettingDefaults holds all default values for configurable settings
var SettingDefaults = map[string]interface{}{
	// Screener
	KeyDefaultAccount: "all", // Account scope used when a request names none
	KeyPipelineSlowMs: 150.0, // Pipeline runs slower than this are logged as warnings

	// Trading calendar
	KeyCalendarMarket:        "XNYS", // Market whose holiday rules are generated
	KeyHolidaySyncYearsAhead: 1.0,    // Years after the current one to store holidays for
}

// StringSettings lists the settings stored and returned as strings; all others are floats
var StringSettings = map[string]bool{
	KeyDefaultAccount: true,
	KeyCalendarMarket: true,
}

// SettingDescriptions documents each setting
var SettingDescriptions = map[string]string{
	KeyDefaultAccount:        "Account scope used by the screener when no account is selected (\"all\" merges every account)",
	KeyPipelineSlowMs:        "Threshold in milliseconds above which a screener pipeline run is logged as slow",
	KeyCalendarMarket:        "Market identifier whose holiday rules the trading calendar generates (XNYS or NONE)",
	KeyHolidaySyncYearsAhead: "Number of years after the current one for which the holiday sync job stores holidays",
}

// SettingUpdate represents a setting value update request
type SettingUpdate struct {
	Value interface{} `json:"value"`
}
