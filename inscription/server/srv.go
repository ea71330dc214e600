package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/btcd/rpcclient"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/index"
	"github.com/inscription-c/ordinals/inscription/index/dao"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/inscription-c/ordinals/inscription/server/handle"
	"github.com/inscription-c/ordinals/internal/signal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	srvOptions = &SrvOptions{}

	mainNetRPCListen  = ":8335"
	testNetRPCListen  = ":18335"
	mainNetRPCConnect = "http://localhost:8332"
	testNetRPCConnect = "http://localhost:18332"
)

// SrvOptions holds the indexer settings. Flags are read first and a yaml
// config file, when given, overrides them.
type SrvOptions struct {
	configFile     string
	Testnet        bool   `yaml:"testnet"`
	RpcListen      string `yaml:"rpc_listen"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	RpcConnect     string `yaml:"rpc_connect"`
	NoApi          bool   `yaml:"no_api"`
	EnablePProf    bool   `yaml:"pprof"`
	LogLevel       string `yaml:"log_level"`
	BatchSize      uint64 `yaml:"batch_size"`
	DecodeLimit    int    `yaml:"decode_limit"`
	PushData4Width int    `yaml:"pushdata4_width"`
	PushNumTags    bool   `yaml:"push_num_tags"`
	PollInterval   int    `yaml:"poll_interval"`
	Mysql          struct {
		Addr     string `yaml:"addr"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DB       string `yaml:"db"`
		// Timeout is how long, in seconds, startup waits for mysql to accept connections.
		Timeout int `yaml:"timeout"`
	} `yaml:"mysql"`
}

type SrvOption func(*SrvOptions)

func WithTestNet(testnet bool) SrvOption {
	return func(options *SrvOptions) {
		options.Testnet = testnet
	}
}

func WithRpcConnect(rpcConnect string) SrvOption {
	return func(options *SrvOptions) {
		options.RpcConnect = rpcConnect
	}
}

func WithRpcListen(rpcListen string) SrvOption {
	return func(options *SrvOptions) {
		options.RpcListen = rpcListen
	}
}

func WithNoApi(noApi bool) SrvOption {
	return func(options *SrvOptions) {
		options.NoApi = noApi
	}
}

func WithMysqlAddr(mysqlAddr string) SrvOption {
	return func(options *SrvOptions) {
		options.Mysql.Addr = mysqlAddr
	}
}

func WithMysqlDBName(mysqlDBName string) SrvOption {
	return func(options *SrvOptions) {
		options.Mysql.DB = mysqlDBName
	}
}

var Cmd = &cobra.Command{
	Use:   "indexer",
	Short: "index inscriptions and ordinal ranges into mysql and serve the api",
	Run: func(cmd *cobra.Command, args []string) {
		if err := IndexSrv(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		<-signal.InterruptHandlersDone
		log.CloseLogRotator()
	},
}

func init() {
	Cmd.Flags().StringVarP(&srvOptions.configFile, "config", "c", "", "yaml config file path")
	Cmd.Flags().BoolVarP(&srvOptions.Testnet, "testnet", "t", false, "bitcoin testnet3")
	Cmd.Flags().StringVarP(&srvOptions.Username, "user", "u", "", "bitcoin rpc server username")
	Cmd.Flags().StringVarP(&srvOptions.Password, "password", "P", "", "bitcoin rpc server password")
	Cmd.Flags().StringVarP(&srvOptions.RpcListen, "rpc_listen", "l", "", "api listen address (default mainnet :8335, testnet :18335)")
	Cmd.Flags().StringVarP(&srvOptions.RpcConnect, "rpc_connect", "s", "", "bitcoin node rpc url (default http://localhost:8332, testnet http://localhost:18332)")
	Cmd.Flags().BoolVarP(&srvOptions.NoApi, "no_api", "", false, "don't start api server")
	Cmd.Flags().BoolVarP(&srvOptions.EnablePProf, "pprof", "", false, "enable pprof")
	Cmd.Flags().StringVarP(&srvOptions.LogLevel, "log_level", "", "info", "log level: trace, debug, info, warn, error, critical")
	Cmd.Flags().Uint64VarP(&srvOptions.BatchSize, "batch_size", "", constants.DefaultFetchBatch, "blocks fetched concurrently")
	Cmd.Flags().IntVarP(&srvOptions.DecodeLimit, "decode_limit", "", constants.DefaultDecodeLimit, "transactions decoded concurrently per block")
	Cmd.Flags().IntVarP(&srvOptions.PushData4Width, "pushdata4_width", "", envelope.DefaultPushData4Width, "length bytes read after OP_PUSHDATA4, 3 or 4")
	Cmd.Flags().BoolVarP(&srvOptions.PushNumTags, "push_num_tags", "", false, "accept OP_1..OP_16 as inscription field tags")
	Cmd.Flags().IntVarP(&srvOptions.PollInterval, "poll_interval", "", 10, "seconds between polls of the node once caught up")
	Cmd.Flags().StringVarP(&srvOptions.Mysql.Addr, "mysql_addr", "d", "", "mysql address (default 127.0.0.1:3306)")
	Cmd.Flags().StringVarP(&srvOptions.Mysql.User, "mysql_user", "", constants.DefaultDBUser, "mysql user")
	Cmd.Flags().StringVarP(&srvOptions.Mysql.Password, "mysql_pass", "", constants.DefaultDBPass, "mysql password")
	Cmd.Flags().StringVarP(&srvOptions.Mysql.DB, "db", "", "", "mysql database name (default ordinals)")
	Cmd.Flags().IntVarP(&srvOptions.Mysql.Timeout, "mysql_timeout", "", 30, "seconds to wait for mysql to accept connections")
}

// loadConfig applies the config file, opts and defaults to o.
func (o *SrvOptions) loadConfig(opts ...SrvOption) error {
	if o.configFile != "" {
		configFile, err := os.Open(o.configFile)
		if err != nil {
			return err
		}
		defer configFile.Close()
		if err := yaml.NewDecoder(configFile).Decode(o); err != nil {
			return fmt.Errorf("config file %s: %w", o.configFile, err)
		}
	}

	for _, v := range opts {
		v(o)
	}

	if o.Mysql.DB == "" {
		o.Mysql.DB = constants.DefaultDBName
	}
	if o.Mysql.Addr == "" {
		o.Mysql.Addr = constants.DefaultDBAddr
	}
	if o.Testnet {
		if o.RpcListen == "" {
			o.RpcListen = testNetRPCListen
		}
		if o.RpcConnect == "" {
			o.RpcConnect = testNetRPCConnect
		}
	} else {
		if o.RpcListen == "" {
			o.RpcListen = mainNetRPCListen
		}
		if o.RpcConnect == "" {
			o.RpcConnect = mainNetRPCConnect
		}
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if !log.ValidLogLevel(o.LogLevel) {
		return fmt.Errorf("invalid log level %q", o.LogLevel)
	}
	if o.PushData4Width == 0 {
		o.PushData4Width = envelope.DefaultPushData4Width
	}
	if o.PushData4Width != 3 && o.PushData4Width != 4 {
		return fmt.Errorf("pushdata4_width must be 3 or 4, got %d", o.PushData4Width)
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 10
	}
	if o.Mysql.Timeout <= 0 {
		o.Mysql.Timeout = 30
	}
	return nil
}

func (o *SrvOptions) dbOptions() []dao.DBOption {
	return []dao.DBOption{
		dao.WithAddr(o.Mysql.Addr),
		dao.WithUser(o.Mysql.User),
		dao.WithPassword(o.Mysql.Password),
		dao.WithDBName(o.Mysql.DB),
		dao.WithDialTimeout(time.Duration(o.Mysql.Timeout) * time.Second),
		dao.WithLogger(log.Gorm),
		dao.WithAutoMigrateTables(tables.Tables...),
	}
}

func (o *SrvOptions) decoder() *envelope.Decoder {
	opts := []envelope.Option{envelope.WithPushData4Width(o.PushData4Width)}
	if o.PushNumTags {
		opts = append(opts, envelope.WithPushNumTags())
	}
	return envelope.NewDecoder(opts...)
}

// IndexSrv starts the indexer and, unless disabled, the api. Both stop on
// SIGINT or SIGTERM.
func IndexSrv(opts ...SrvOption) error {
	if err := srvOptions.loadConfig(opts...); err != nil {
		return err
	}

	log.InitLogRotator(constants.LogFile("indexer"))
	log.SetLogLevels(srvOptions.LogLevel)

	db, err := dao.NewDB(srvOptions.dbOptions()...)
	if err != nil {
		return err
	}
	signal.AddInterruptHandler(func() {
		if err := db.Close(); err != nil {
			log.Srv.Errorf("db.Close: %v", err)
		}
	})

	cli, err := rpcclient.NewClient(
		rpcclient.WithClientHost(srvOptions.RpcConnect),
		rpcclient.WithClientUser(srvOptions.Username),
		rpcclient.WithClientPassword(srvOptions.Password),
	)
	if err != nil {
		return err
	}
	signal.AddInterruptHandler(cli.Shutdown)

	indexer := index.NewIndexer(
		index.WithDB(db),
		index.WithClient(cli),
		index.WithBatchSize(srvOptions.BatchSize),
		index.WithDecodeLimit(srvOptions.DecodeLimit),
		index.WithDecoder(srvOptions.decoder()),
		index.WithPollInterval(time.Duration(srvOptions.PollInterval)*time.Second),
	)
	indexer.Start(context.Background())
	signal.AddInterruptHandler(indexer.Stop)

	if srvOptions.NoApi {
		return nil
	}
	if srvOptions.LogLevel != "debug" && srvOptions.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	h, err := handle.New(
		handle.WithDB(db),
		handle.WithAddr(srvOptions.RpcListen),
		handle.WithTestNet(srvOptions.Testnet),
		handle.WithEnablePProf(srvOptions.EnablePProf),
	)
	if err != nil {
		return err
	}
	if err := h.Run(); err != nil {
		return err
	}
	signal.AddInterruptHandler(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Shutdown(ctx); err != nil {
			log.Srv.Errorf("srv.Shutdown: %v", err)
		}
	})
	return nil
}
