package cipai

var (
	yiJiangNan = Variant{
		Example:     "江南好　风景旧曾谙　日出江花红胜火　春来江水绿如蓝　能不忆江南　",
		Rule:        "中平仄句中仄仄平平韵中仄中平平仄仄句中平中仄仄平平韵中仄仄平平韵",
		Description: "单调二十七字，五句三平韵",
	}
	xiangJianHuan = Variant{
		Example:     "无言独上西楼　月如钩　寂寞梧桐深院锁清秋　剪不断　理还乱　是离愁　别是一般滋味在心头　",
		Rule:        "中平中仄平平韵中平平韵中仄中平中仄仄平平韵中中仄换仄韵中中仄叶仄韵仄平平换平韵中仄中平中仄仄平平叶平韵",
		Description: "双调三十六字，前段三句三平韵，后段四句两仄韵两平韵",
	}
	changXiangSi = Variant{
		Example:     "汴水流　泗水流　流到瓜洲古渡头　吴山点点愁　思悠悠　恨悠悠　恨到归时方始休　月明人倚楼　",
		Rule:        "中仄平韵中仄平叠韵中仄平平中仄平韵中平中仄平韵中仄平韵中仄平叠韵中仄平平中仄平韵中平中仄平韵",
		Description: "双调三十六字，前后段各四句三平韵一叠韵",
	}
)
