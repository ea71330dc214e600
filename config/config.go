package config

var (
	// Username node rpc user name
	Username string
	// Password node rpc password
	Password string
	// Testnet is bitcoin testnet3
	Testnet bool
	// RpcConnect node rpc url, used by --txid
	RpcConnect string
	// Hex raw transaction hex
	Hex string
	// FilePath raw transaction file, binary or hex
	FilePath string
	// TxId transaction fetched from the node
	TxId string
	// PushData4Width OP_PUSHDATA4 length field width, 3 or 4
	PushData4Width int
	// PushNumTags accept OP_1..OP_16 as field tags
	PushNumTags bool
	// Height block height of the transaction, negative when unknown
	Height int64
	// LedgerDir leveldb supply ledger dir
	LedgerDir string
	// LogLevel log level
	LogLevel string
)
