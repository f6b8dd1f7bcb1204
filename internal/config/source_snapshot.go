//go:build snapshot

package config

const defaultSource = SourceSnapshot
