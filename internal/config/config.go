package config

import (
	log "github.com/sirupsen/logrus"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the wallet state.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DefaultMixinsKey is the ring size required for every input of a swap leg.
	DefaultMixinsKey = "DEFAULT_MIXINS"
	// FeeAmountKey is the flat network fee, in native units, attached to every swap transaction.
	FeeAmountKey = "FEE_AMOUNT"
	// DBTypeKey is used to switch database type between those supported (badger, inmemory).
	DBTypeKey = "DB_TYPE"

	// DbLocation is the folder inside the datadir containing db files.
	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("ionic-swap", false)

// InitConfig loads the environment driven configuration with its defaults.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("IONIC")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(DefaultMixinsKey, 10)
	vip.SetDefault(FeeAmountKey, 10000000000)
	vip.SetDefault(DBTypeKey, "badger")

	return nil
}

// GetString returns the string value for the given key.
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt returns the int value for the given key.
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetUint64 returns the uint64 value for the given key.
func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}
