package constants

const (
	OneBtc                 = uint64(100_000_000)
	SubsidyHalvingInterval = uint64(210_000)
	DiffChangeInterval     = uint64(2016)
	CycleEpochs            = uint64(6)
	FirstPostSubsidyEpoch  = uint64(33)

	// SupplySat is the number of sats that will ever be minted.
	SupplySat     = uint64(2099999997690000)
	LastSupplySat = SupplySat - 1
)
