package inscription

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/ordinals/btcd/rpcclient"
	"github.com/inscription-c/ordinals/config"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/block"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/spf13/cobra"
)

var ErrNoInput = errors.New("one of --hex, --file or --txid is required")

func init() {
	Cmd.Flags().StringVarP(&config.Hex, "hex", "x", "", "raw transaction hex")
	Cmd.Flags().StringVarP(&config.FilePath, "file", "f", "", "raw transaction file, binary or hex")
	Cmd.Flags().StringVarP(&config.TxId, "txid", "", "", "fetch the transaction from the node")
	Cmd.Flags().StringVarP(&config.Username, "user", "u", "", "node rpc server username")
	Cmd.Flags().StringVarP(&config.Password, "password", "P", "", "node rpc server password")
	Cmd.Flags().BoolVarP(&config.Testnet, "testnet", "t", false, "bitcoin testnet3")
	Cmd.Flags().StringVarP(&config.RpcConnect, "rpc_connect", "s", "", "the URL of the node RPC server (default http://localhost:8332, testnet: http://localhost:18332)")
	Cmd.Flags().IntVarP(&config.PushData4Width, "pushdata4_width", "", envelope.DefaultPushData4Width, "length bytes read after OP_PUSHDATA4, 3 or 4")
	Cmd.Flags().BoolVarP(&config.PushNumTags, "push_num_tags", "", false, "accept OP_1..OP_16 as inscription field tags")
	Cmd.Flags().Int64VarP(&config.Height, "height", "", -1, "block height of the transaction, enables ordinal assignment")
	Cmd.Flags().StringVarP(&config.LedgerDir, "ledger", "", "", "leveldb supply ledger dir (default under the app data dir)")
	Cmd.Flags().StringVarP(&config.LogLevel, "log_level", "", "warn", "log level")
}

// Cmd decodes the inscriptions of one transaction and prints them as json.
var Cmd = &cobra.Command{
	Use:   "decode",
	Short: "decode the inscriptions of a raw transaction",
	Run: func(cmd *cobra.Command, args []string) {
		if err := decode(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func configCheck() error {
	inputs := 0
	for _, v := range []string{config.Hex, config.FilePath, config.TxId} {
		if v != "" {
			inputs++
		}
	}
	if inputs != 1 {
		return ErrNoInput
	}
	if config.PushData4Width != 3 && config.PushData4Width != 4 {
		return fmt.Errorf("pushdata4_width must be 3 or 4, got %d", config.PushData4Width)
	}
	if config.RpcConnect == "" {
		config.RpcConnect = "http://localhost:8332"
		if config.Testnet {
			config.RpcConnect = "http://localhost:18332"
		}
	}
	if config.LedgerDir == "" {
		config.LedgerDir = constants.SupplyDBDir(config.Testnet)
	}
	if !log.ValidLogLevel(config.LogLevel) {
		return fmt.Errorf("invalid log level %q", config.LogLevel)
	}
	log.SetLogLevels(config.LogLevel)
	return nil
}

func newDecoder() *envelope.Decoder {
	opts := []envelope.Option{envelope.WithPushData4Width(config.PushData4Width)}
	if config.PushNumTags {
		opts = append(opts, envelope.WithPushNumTags())
	}
	return envelope.NewDecoder(opts...)
}

func chainParams() *chaincfg.Params {
	if config.Testnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

func decode() error {
	if err := configCheck(); err != nil {
		return err
	}
	raw, err := readRawTx()
	if err != nil {
		return err
	}

	result, msg, err := DecodeRawTx(newDecoder(), raw)
	if err != nil {
		return err
	}

	if config.Height >= 0 && msg != nil {
		store, err := ordinal.OpenLevelDBSupply(config.LedgerDir)
		if err != nil {
			return err
		}
		defer store.Close()
		if config.Height > 0 {
			if err := store.ExtendTo(uint64(config.Height) - 1); err != nil {
				return err
			}
		}
		if err := result.Assign(store, msg, uint64(config.Height), chainParams()); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// readRawTx loads the transaction bytes named by the flags.
func readRawTx() ([]byte, error) {
	switch {
	case config.Hex != "":
		return hex.DecodeString(strings.TrimSpace(config.Hex))
	case config.FilePath != "":
		data, err := os.ReadFile(config.FilePath)
		if err != nil {
			return nil, err
		}
		return hexOrBinary(data), nil
	default:
		return fetchRawTx(config.TxId)
	}
}

// hexOrBinary decodes data when it is hex text and returns it unchanged otherwise.
func hexOrBinary(data []byte) []byte {
	text := bytes.TrimSpace(data)
	decoded := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(decoded, text); err != nil || len(text) == 0 {
		return data
	}
	return decoded
}

func fetchRawTx(txid string) ([]byte, error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("invalid txid %s: %w", txid, err)
	}
	cli, err := rpcclient.NewClient(
		rpcclient.WithClientHost(config.RpcConnect),
		rpcclient.WithClientUser(config.Username),
		rpcclient.WithClientPassword(config.Password),
	)
	if err != nil {
		return nil, err
	}
	defer cli.Shutdown()

	tx, err := cli.GetRawTransaction(hash)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, tx.MsgTx().SerializeSize()))
	if err := tx.MsgTx().Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeResult is what decode prints.
type DecodeResult struct {
	Txid         string                  `json:"txid"`
	Inscriptions []*envelope.Inscription `json:"inscriptions"`
	Height       *uint64                 `json:"height,omitempty"`
	Coinbase     bool                    `json:"coinbase"`
	Assignments  []*ordinal.Assignment   `json:"assignments,omitempty"`
	Leftover     *ordinal.Range          `json:"leftover,omitempty"`
}

// DecodeRawTx decodes raw. When raw parses as a transaction the inscription
// ids use its txid and msg is returned; other bytes, such as a bare
// tapscript, are scanned under the double sha256 of raw.
func DecodeRawTx(decoder *envelope.Decoder, raw []byte) (*DecodeResult, *wire.MsgTx, error) {
	msg := wire.NewMsgTx(wire.TxVersion)
	var txid string
	if err := msg.Deserialize(bytes.NewReader(raw)); err == nil {
		txid = msg.TxHash().String()
	} else {
		msg = nil
		txid = chainhash.DoubleHashH(raw).String()
	}

	inscriptions, err := decoder.Decode(txid, raw)
	if err != nil {
		return nil, nil, err
	}
	if inscriptions == nil {
		inscriptions = make([]*envelope.Inscription, 0)
	}
	return &DecodeResult{Txid: txid, Inscriptions: inscriptions}, msg, nil
}

// Assign adds the ordinal assignment of msg mined at height. store must
// hold the supply through height-1.
func (r *DecodeResult) Assign(store ordinal.SupplyStore, msg *wire.MsgTx, height uint64, params *chaincfg.Params) error {
	tx, err := block.FromMsgTx(msg, params)
	if err != nil {
		return err
	}
	r.Height = &height
	r.Coinbase = tx.Coinbase
	if !tx.Coinbase {
		r.Assignments = ordinal.AssignRelative(tx.Txid, tx.Values())
		return nil
	}
	first, err := ordinal.BlockTotalSupply(store, height)
	if err != nil {
		return err
	}
	var leftover ordinal.Range
	r.Assignments, leftover = ordinal.AssignCoinbase(tx.Txid, tx.Values(), first, ordinal.Subsidy(height))
	r.Leftover = &leftover
	return nil
}
