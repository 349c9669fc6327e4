package source

// SampleRecords returns a small demo batch covering both item markers, both
// condition markers and a not-yet-effective coupon.
func SampleRecords() []Record {
	return []Record{
		{
			"name":        "麦辣鸡腿堡买一送一",
			"description": "购买麦辣鸡腿堡，第二个免费。适用产品:麦辣鸡腿堡;使用条件:限堂食",
			"validFrom":   "2025-01-19",
			"validTo":     "2025-01-25",
			"status":      "可用",
		},
		{
			"name":        "大薯条5折券",
			"description": "大薯条5折优惠。可购买:大薯条;条件:任意订单可用",
			"validFrom":   "2025-01-20",
			"validTo":     "2025-01-27",
			"status":      "可用",
		},
		{
			"name":        "可乐免费升级",
			"description": "中可乐免费升级为大可乐。适用产品:可乐;使用条件:购买任意套餐",
			"validFrom":   "2025-01-22",
			"validTo":     "2025-01-29",
			"status":      "可用",
		},
		{
			"name":        "新年全家桶8折",
			"description": "新年全家桶8折优惠。可购买:全家桶套餐;条件:限周末使用",
			"validFrom":   "2025-01-28",
			"validTo":     "2025-02-05",
			"status":      "待生效",
		},
	}
}
