package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Tracker
	&Client{},
	&Category{},
	&Product{},
	&AuctionHouse{},
	&AuctionHeader{},
	&AuctionDetail{},
}
