package tables

var Tables = []interface{}{
	&BlockInfo{},
	&Transactions{},
	&TransactionInputs{},
	&Inscriptions{},
	&OutpointOrdinals{},
	&TotalSupply{},
	&Statistic{},
}
