package chunkbuf

import (
	"os"
	"path/filepath"
	"strings"

	buf "github.com/openziti/chunkbuf"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&doCpuProfile, "cpu", false, "Enable CPU profiling")
	RootCmd.PersistentFlags().BoolVar(&doMemoryProfile, "memory", false, "Enable memory profiling")
	RootCmd.PersistentFlags().BoolVar(&doMutexProfile, "mutex", false, "Enable mutex profiling")
	RootCmd.PersistentFlags().StringVarP(&profilePath, "config", "c", "", "Buffer profile file path")
	RootCmd.PersistentFlags().BoolVarP(&profileDump, "dump", "d", false, "Dump the processed buffer profile")
}

var RootCmd = &cobra.Command{
	Use:   strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0])),
	Short: "Chunked buffer scaffolding",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if doCpuProfile {
			cpuProfile = profile.Start(profile.CPUProfile)
		}
		if doMemoryProfile {
			memoryProfile = profile.Start(profile.MemProfile)
		}
		if doMutexProfile {
			mutexProfile = profile.Start(profile.MutexProfile)
		}
		if profilePath != "" {
			p, err := buf.LoadProfileFromPath(profilePath)
			if err != nil {
				logrus.Fatalf("unable to load buffer profile (%v)", err)
			}
			ActiveProfile = p
		}
		if profileDump {
			logrus.Infof(ActiveProfile.Dump())
		}
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cpuProfile != nil {
			cpuProfile.Stop()
		}
		if memoryProfile != nil {
			memoryProfile.Stop()
		}
		if mutexProfile != nil {
			mutexProfile.Stop()
		}
	},
}

// ActiveProfile is the buffer profile subcommands construct buffers from,
// the baseline unless a profile file was loaded.
var ActiveProfile = buf.NewBaselineProfile()

var verbose bool
var doCpuProfile bool
var cpuProfile interface{ Stop() }
var doMemoryProfile bool
var memoryProfile interface{ Stop() }
var doMutexProfile bool
var mutexProfile interface{ Stop() }
var profilePath string
var profileDump bool
