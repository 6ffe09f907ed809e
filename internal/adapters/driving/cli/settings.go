package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure corpus, embedding, model and media settings.

Settings are stored in the config file under the ansa home directory.
API keys are read from the environment (ANSA_API_KEY or HF_TOKEN) and
are never written to the settings file.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all current settings",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting by key. Keys use dotted notation, e.g.

  ansa settings set corpus.dir ~/docs
  ansa settings set embedding.provider ollama
  ansa settings set llm.model gpt-4o-mini
  ansa settings set media.enable_video true

Run 'ansa settings list' to see all keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingAccessor reads and writes one dotted settings key.
type settingAccessor struct {
	get func(*domain.AppSettings) string
	set func(*domain.AppSettings, string) error
}

// settingKeys maps every exposed dotted key to its accessor.
func settingKeys() map[string]settingAccessor {
	return map[string]settingAccessor{
		"corpus.dir": {
			get: func(s *domain.AppSettings) string { return s.Corpus.Dir },
			set: func(s *domain.AppSettings, v string) error { s.Corpus.Dir = v; return nil },
		},
		"corpus.chunk_size": {
			get: func(s *domain.AppSettings) string { return strconv.Itoa(s.Corpus.ChunkSize) },
			set: setInt(func(s *domain.AppSettings, v int) { s.Corpus.ChunkSize = v }),
		},
		"corpus.chunk_overlap": {
			get: func(s *domain.AppSettings) string { return strconv.Itoa(s.Corpus.ChunkOverlap) },
			set: setInt(func(s *domain.AppSettings, v int) { s.Corpus.ChunkOverlap = v }),
		},
		"corpus.top_k": {
			get: func(s *domain.AppSettings) string { return strconv.Itoa(s.Corpus.TopK) },
			set: setInt(func(s *domain.AppSettings, v int) { s.Corpus.TopK = v }),
		},
		"embedding.provider": {
			get: func(s *domain.AppSettings) string { return s.Embedding.Provider.String() },
			set: func(s *domain.AppSettings, v string) error {
				provider := domain.AIProvider(v)
				if !provider.IsValid() {
					return fmt.Errorf("unknown provider %q", v)
				}
				s.Embedding.Provider = provider
				return nil
			},
		},
		"embedding.model": {
			get: func(s *domain.AppSettings) string { return s.Embedding.Model },
			set: func(s *domain.AppSettings, v string) error {
				s.Embedding.Model = v
				// Known models carry their vector size
				if dims, ok := domain.EmbeddingDimensions()[v]; ok {
					s.Embedding.Dimensions = dims
				}
				return nil
			},
		},
		"embedding.base_url": {
			get: func(s *domain.AppSettings) string { return s.Embedding.BaseURL },
			set: func(s *domain.AppSettings, v string) error { s.Embedding.BaseURL = v; return nil },
		},
		"embedding.dimensions": {
			get: func(s *domain.AppSettings) string { return strconv.Itoa(s.Embedding.Dimensions) },
			set: setInt(func(s *domain.AppSettings, v int) { s.Embedding.Dimensions = v }),
		},
		"llm.provider": {
			get: func(s *domain.AppSettings) string { return s.LLM.Provider.String() },
			set: func(s *domain.AppSettings, v string) error {
				provider := domain.AIProvider(v)
				if !provider.IsValid() {
					return fmt.Errorf("unknown provider %q", v)
				}
				s.LLM.Provider = provider
				return nil
			},
		},
		"llm.model": {
			get: func(s *domain.AppSettings) string { return s.LLM.Model },
			set: func(s *domain.AppSettings, v string) error { s.LLM.Model = v; return nil },
		},
		"llm.base_url": {
			get: func(s *domain.AppSettings) string { return s.LLM.BaseURL },
			set: func(s *domain.AppSettings, v string) error { s.LLM.BaseURL = v; return nil },
		},
		"llm.max_tokens": {
			get: func(s *domain.AppSettings) string { return strconv.Itoa(s.LLM.MaxTokens) },
			set: setInt(func(s *domain.AppSettings, v int) { s.LLM.MaxTokens = v }),
		},
		"llm.temperature": {
			get: func(s *domain.AppSettings) string {
				return strconv.FormatFloat(s.LLM.Temperature, 'g', -1, 64)
			},
			set: func(s *domain.AppSettings, v string) error {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return fmt.Errorf("not a number: %q", v)
				}
				s.LLM.Temperature = f
				return nil
			},
		},
		"media.enable_video": {
			get: func(s *domain.AppSettings) string { return strconv.FormatBool(s.Media.EnableVideo) },
			set: func(s *domain.AppSettings, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return fmt.Errorf("not a boolean: %q", v)
				}
				s.Media.EnableVideo = b
				return nil
			},
		},
		"media.frame_interval": {
			get: func(s *domain.AppSettings) string {
				return strconv.FormatFloat(s.Media.FrameInterval, 'g', -1, 64)
			},
			set: func(s *domain.AppSettings, v string) error {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return fmt.Errorf("not a number: %q", v)
				}
				s.Media.FrameInterval = f
				return nil
			},
		},
		"media.max_frames": {
			get: func(s *domain.AppSettings) string { return strconv.Itoa(s.Media.MaxFrames) },
			set: setInt(func(s *domain.AppSettings, v int) { s.Media.MaxFrames = v }),
		},
		"media.transcribe_url": {
			get: func(s *domain.AppSettings) string { return s.Media.TranscribeURL },
			set: func(s *domain.AppSettings, v string) error { s.Media.TranscribeURL = v; return nil },
		},
		"media.transcribe_model": {
			get: func(s *domain.AppSettings) string { return s.Media.TranscribeModel },
			set: func(s *domain.AppSettings, v string) error { s.Media.TranscribeModel = v; return nil },
		},
	}
}

// setInt adapts an int field assignment to the accessor signature.
func setInt(assign func(*domain.AppSettings, int)) func(*domain.AppSettings, string) error {
	return func(s *domain.AppSettings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("not an integer: %q", v)
		}
		assign(s, n)
		return nil
	}
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	keys := settingKeys()
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd.Printf("%-24s %s\n", name, keys[name].get(settings))
	}

	cmd.Println()
	if settings.Embedding.APIKey != "" {
		cmd.Printf("API key (from environment): %s\n", maskAPIKey(settings.Embedding.APIKey))
	} else {
		cmd.Println("API key: not set (export ANSA_API_KEY or HF_TOKEN)")
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	accessor, ok := settingKeys()[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q; run 'ansa settings list' to see keys", args[0])
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(accessor.get(settings))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	accessor, ok := settingKeys()[key]
	if !ok {
		return fmt.Errorf("unknown setting %q; run 'ansa settings list' to see keys", key)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := accessor.set(settings, value); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("%s = %s\n", key, accessor.get(settings))

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
