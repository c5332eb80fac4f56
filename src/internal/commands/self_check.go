package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/auth"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/lists"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

func CreateSelfCheckCommand() *SelfCheckCommand {
	gc := &SelfCheckCommand{
		fs:  flag.NewFlagSet("self-check", flag.ContinueOnError),
		out: os.Stdout,
	}

	gc.fs.BoolVar(&gc.Probe, "probe", false, "Also acquire a token, read the IP group and fetch the prefix list (never writes)")

	return gc
}

// SelfCheckCommand validates the configuration and prints the effective settings.
type SelfCheckCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies
	out  io.Writer

	Probe bool
}

func (g *SelfCheckCommand) Name() string {
	return g.fs.Name()
}

func (g *SelfCheckCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	g.cfg = cfg

	g.deps = domain.NewAppDependencies(cfg)
	return nil
}

func (g *SelfCheckCommand) Run() error {
	log.Infof("Running self-check...")

	serialized, err := g.cfg.SerializeConfig()
	if err != nil {
		log.Errorf("Failed to serialize config: %v", err)
		return err
	}

	fmt.Fprintln(g.out, "---------------- Configuration START -----------------")
	if _, err := g.out.Write(serialized.Bytes()); err != nil {
		return fmt.Errorf("failed to output config: %w", err)
	}
	fmt.Fprintln(g.out, "----------------- Configuration END ------------------")

	client := azure.NewClient(g.cfg.Azure.ManagementEndpoint, g.cfg.Azure.APIVersion, nil)
	fmt.Fprintf(g.out, "Config file:   %s\n", valueOr(g.cfg.ConfigFilePath(), "(none)"))
	fmt.Fprintf(g.out, "Token URL:     %s\n", auth.TokenURL(g.cfg.Azure.AuthorityHost, g.cfg.Azure.TenantID))
	fmt.Fprintf(g.out, "IP group URL:  %s\n", client.ResourceURL(g.deps.ResourceID()))
	fmt.Fprintf(g.out, "Source:        %s (section %s)\n", g.cfg.Source.PageURL, g.cfg.Source.SectionID)
	fmt.Fprintf(g.out, "Minimum IPv4:  more than %d\n", g.cfg.Safety.MinimumAcceptableV4Networks)

	if !g.Probe {
		log.Infof("Self-check completed successfully")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.probe(ctx); err != nil {
		log.Errorf("Self-check completed with failures")
		return fmt.Errorf("self-check failed: %w", err)
	}

	log.Infof("Self-check completed successfully")
	return nil
}

// probe exercises every remote dependency without writing anything.
func (g *SelfCheckCommand) probe(ctx context.Context) error {
	token, err := g.deps.TokenProvider().AcquireToken(ctx)
	if err != nil {
		fmt.Fprintf(g.out, "[FAIL] token:    %v\n", err)
		return err
	}
	fmt.Fprintf(g.out, "[ OK ] token:    %s\n", token)

	group, err := g.deps.IPGroupClient().GetIPGroup(ctx, token.Value, g.deps.ResourceID())
	if err == nil && group == nil {
		err = apperrors.NewResourceError("IP group was read as empty", nil)
	}
	if err != nil {
		fmt.Fprintf(g.out, "[FAIL] ip group: %v\n", err)
		return err
	}
	fmt.Fprintf(g.out, "[ OK ] ip group: %d addresses in %s\n", len(group.Properties.IPAddresses), group.Location)

	raw, err := g.deps.PrefixSource().FetchPrefixes(ctx)
	if err != nil {
		fmt.Fprintf(g.out, "[FAIL] source:   %v\n", err)
		return err
	}
	set := lists.Classify(raw)
	if err := lists.ValidateV4Count(set, g.cfg.Safety.MinimumAcceptableV4Networks); err != nil {
		fmt.Fprintf(g.out, "[FAIL] source:   %v\n", err)
		return err
	}
	fmt.Fprintf(g.out, "[ OK ] source:   %d IPv4, %d IPv6, %d dropped\n", len(set.V4), len(set.V6), len(set.Dropped))

	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
