package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:   true,
		DrawLastMoveBackground: true,
		ShowSquareNumbers:      false,
		Colors: ConfigColors{
			DarkSquare:   94,
			LightSquare:  180,
			Red:          160,
			Black:        232,
			CursorBG:     4,
			SelectedBG:   2,
			LandingBG:    3,
			LastMoveBG:   58,
			CoordinateFG: 245,
		},
		Symbols: ConfigSymbols{
			Man:        '●',
			King:       '◉',
			DarkSquare: ' ',
		},
	}

	DefaultConfig = Config{
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			WebDir:      "",
			OpenBrowser: false,
			GameTTL:     "2h",
			SweepEvery:  "5m",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Client: ClientConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: "10s",
		},
		Theme: DefaultTheme,
	}
}
