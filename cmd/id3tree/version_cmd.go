package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in id3tree's version
	VersionMajor = 0
	// VersionMinor is the minor number in id3tree's version
	VersionMinor = 3
	// VersionPatch is the patch number in id3tree's version
	VersionPatch = 0
)

func versionCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of id3tree",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(rootConfig.stdout, "id3tree v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
