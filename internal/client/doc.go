// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application runtime.
//
// It wires the local cache, outbound adapters, client services, and the
// background balance sync job into a single process lifecycle and dispatches
// the subcommand given on the command line.
package client
