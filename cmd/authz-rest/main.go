/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package authz-rest serves the wallet side of the dapp authorization handshake.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/cmd/authz-rest/startcmd"
)

var logger = log.New("authz-rest")
var Version string // will be embeded during build

func main() {
	rootCmd := &cobra.Command{
		Use: "authz-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd(
		&startcmd.HTTPServer{},
		startcmd.WithVersion(Version),
		startcmd.WithServerVersion(os.Getenv("AUTHZ_SERVER_VERSION")),
	))

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run authz-rest", log.WithError(err))
	}
}
