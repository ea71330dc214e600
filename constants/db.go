package constants

import (
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	DefaultDBName       = "ordinals"
	DefaultDBAddr       = "127.0.0.1:3306"
	DefaultDBUser       = "root"
	DefaultDBPass       = ""
	DefaultFetchBatch   = 32
	DefaultDecodeLimit  = 16
	DefaultInsertBatch  = 1_000
	DefaultContentCache = 10_000
	MaxInsertDataSize   = 6 * 1024 * 1024
)

// LogFile returns the rotated log file path of the given command.
func LogFile(command string) string {
	return btcutil.AppDataDir(filepath.Join(AppName, "logs", command+".log"), false)
}

// SupplyDBDir returns the default leveldb directory of the standalone supply ledger.
func SupplyDBDir(testnet bool) string {
	if testnet {
		return btcutil.AppDataDir(filepath.Join(AppName, "supply", "testnet"), false)
	}
	return btcutil.AppDataDir(filepath.Join(AppName, "supply", "mainnet"), false)
}
