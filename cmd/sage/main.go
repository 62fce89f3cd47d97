package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/northernisles/sage/internal/profile"
	"github.com/northernisles/sage/plugin/ai"
	"github.com/northernisles/sage/plugin/wikipedia"
	"github.com/northernisles/sage/server"
	"github.com/northernisles/sage/server/dialogue"
	apiv1 "github.com/northernisles/sage/server/router/api/v1"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "sage",
	Short: "NPC dialogue agent serving Adam, Sage of the Northern Isles",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile, err := loadProfile()
		if err != nil {
			slog.Error("invalid configuration", "error", err)
			os.Exit(1)
		}

		deps := buildDependencies(instanceProfile)
		apiV1Service := apiv1.NewAPIV1Service(instanceProfile, deps.store, deps.resolver, deps.orchestrator)
		s := server.NewServer(instanceProfile, apiV1Service)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			s.Shutdown(context.Background())
		}()

		if err := s.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	},
}

// dependencies holds the wired dialogue pipeline.
type dependencies struct {
	store        *dialogue.Store
	resolver     *dialogue.Resolver
	orchestrator *dialogue.Orchestrator
}

func buildDependencies(p *profile.Profile) *dependencies {
	store := dialogue.NewStore(&dialogue.WordEstimator{}, dialogue.StoreConfig{
		TokenBudget: p.TokenBudget,
		KeepRecent:  p.KeepRecent,
	})
	resolver := dialogue.NewResolver(nil, wikipedia.NewClient(wikipedia.Config{
		BaseURL: p.WikipediaBaseURL,
	}))
	policy := dialogue.NewPolicy(nil)

	if !p.IsLLMEnabled() {
		slog.Warn("no completion API key configured, every generation will fall back (set SAGE_LLM_API_KEY)")
	}
	llm, err := ai.NewLLMService(&ai.Config{
		BaseURL: p.LLMBaseURL,
		APIKey:  p.LLMAPIKey,
		Model:   p.LLMModel,
	})
	if err != nil {
		slog.Error("failed to create LLM service", "error", err)
		os.Exit(1)
	}

	return &dependencies{
		store:        store,
		resolver:     resolver,
		orchestrator: dialogue.NewOrchestrator(store, policy, resolver, llm, ""),
	}
}

func loadProfile() (*profile.Profile, error) {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Version: version,
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}
	return instanceProfile, nil
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8080)

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of server")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("sage")
	viper.AutomaticEnv()

	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
