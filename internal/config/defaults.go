package config

const (
	defaultDataDir    = "~/.local/share/kotoba"
	defaultOutputDir  = "~/kotoba"
	defaultLogDir     = "~/.local/share/kotoba/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultDictionary = "https://jisho.org/api/v1"
	defaultKanji      = "https://kanjiapi.dev/v1"
	defaultStrokes    = "https://raw.githubusercontent.com/KanjiVG/kanjivg/master/kanji"
	defaultSentences  = "https://tatoeba.org/en/api_v0"
	defaultFromLang   = "jpn"
	defaultToLang     = "eng"

	defaultRequestTimeout   = 10
	defaultSentenceLimit    = 2
	defaultRateLimitDelayMS = 500
	defaultSpeechVoice      = "ja-JP-NanamiNeural"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Dictionary: Dictionary{
			BaseURL:        defaultDictionary,
			RequestTimeout: defaultRequestTimeout,
		},
		Kanji: Kanji{
			BaseURL:        defaultKanji,
			RequestTimeout: defaultRequestTimeout,
		},
		Strokes: Strokes{
			Enabled: true,
			BaseURL: defaultStrokes,
		},
		Sentences: Sentences{
			Enabled:      true,
			BaseURL:      defaultSentences,
			FromLanguage: defaultFromLang,
			ToLanguage:   defaultToLang,
			Limit:        defaultSentenceLimit,
		},
		Speech: Speech{
			Enabled:        false,
			Voice:          defaultSpeechVoice,
			RequestTimeout: 30,
		},
		Enrich: Enrich{
			RateLimitDelayMS: defaultRateLimitDelayMS,
			English:          true,
			Pitch:            true,
			StrokeDiagrams:   true,
			Examples:         true,
			Audio:            false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
