package endpoint

import "net/http"

// Logical operation names.
const (
	UserCheckIn          = "user.checkIn"
	UserLogout           = "user.logout"
	UserRetrievePassword = "user.retrievePassword"
	SMSSend              = "sms.send"

	AccountProfile         = "account.profile"
	AccountAvatar          = "account.avatar"
	AccountNickname        = "account.nickname"
	AccountChangePassword  = "account.changePassword"
	AccountRealNameStatus  = "account.realNameStatus"
	AccountRealNameSubmit  = "account.realNameSubmit"
	AccountBalanceLog      = "account.balanceLog"
	AccountServiceFeeLog   = "account.serviceFeeLog"
	AccountStaticIncomeLog = "account.staticIncomeLog"

	PaymentAccountList       = "paymentAccount.list"
	PaymentAccountAdd        = "paymentAccount.add"
	PaymentAccountEdit       = "paymentAccount.edit"
	PaymentAccountDelete     = "paymentAccount.delete"
	PaymentAccountSetDefault = "paymentAccount.setDefault"

	RechargeCompanyAccounts = "recharge.companyAccounts"
	RechargeSubmit          = "recharge.submit"
	RechargeOrders          = "recharge.orders"
	RechargeOrderDetail     = "recharge.orderDetail"
	WithdrawSubmit          = "withdraw.submit"
	WithdrawRecords         = "withdraw.records"
	TransferSubmit          = "transfer.submit"

	ShopProducts       = "shop.products"
	ShopProductDetail  = "shop.productDetail"
	ShopOrderCreate    = "shopOrder.create"
	ShopOrderList      = "shopOrder.list"
	ShopOrderDetail    = "shopOrder.detail"
	ShopOrderCancel    = "shopOrder.cancel"
	ShopOrderConfirm   = "shopOrder.confirm"
	ShopOrderDelete    = "shopOrder.delete"
	AddressList        = "address.list"
	AddressDefault     = "address.default"
	AddressAdd         = "address.add"
	AddressEdit        = "address.edit"
	AddressDelete      = "address.delete"

	CollectionItems         = "collection.items"
	CollectionDetail        = "collection.detail"
	CollectionBuy           = "collection.buy"
	CollectionMine          = "collection.mine"
	CollectionConsign       = "collection.consign"
	CollectionCancelConsign = "collection.cancelConsign"
	CollectionConsignments  = "collection.consignments"
	CollectionDeliver       = "collection.deliver"
	ArtistList              = "artist.list"
	ArtistDetail            = "artist.detail"

	SignInInfo    = "signIn.info"
	SignInDo      = "signIn.do"
	SignInRewards = "signIn.rewards"

	TeamOverview      = "team.overview"
	TeamMembers       = "team.members"
	TeamPromotionCard = "team.promotionCard"

	CommonUpload = "common.upload"

	CmsPage        = "cms.page"
	HelpCategories = "help.categories"
	HelpQuestions  = "help.questions"

	NoticeList   = "notice.list"
	NoticeDetail = "notice.detail"
)

var defaultDescriptors = []Descriptor{
	{Name: UserCheckIn, Method: http.MethodPost, Path: "/User/checkIn", Body: BodyJSON},
	{Name: UserLogout, Method: http.MethodPost, Path: "/User/logout", Body: BodyForm, Auth: true},
	{Name: UserRetrievePassword, Method: http.MethodPost, Path: "/User/retrievePassword", Body: BodyJSON},
	{Name: SMSSend, Method: http.MethodPost, Path: "/Sms/send", Body: BodyForm},

	{Name: AccountProfile, Path: "/Account/profile", Auth: true},
	{Name: AccountAvatar, Method: http.MethodPost, Path: "/Account/avatar", Body: BodyForm, Auth: true},
	{Name: AccountNickname, Method: http.MethodPost, Path: "/Account/nickname", Body: BodyForm, Auth: true},
	{Name: AccountChangePassword, Method: http.MethodPost, Path: "/Account/changePassword", Body: BodyJSON, Auth: true},
	{Name: AccountRealNameStatus, Path: "/Account/realNameStatus", Auth: true},
	{Name: AccountRealNameSubmit, Method: http.MethodPost, Path: "/Account/realName", Body: BodyForm, Auth: true},
	{Name: AccountBalanceLog, Path: "/Account/balance", Body: BodyQuery, Auth: true},
	{Name: AccountServiceFeeLog, Path: "/Account/serviceFeeLog", Body: BodyQuery, Auth: true},
	{Name: AccountStaticIncomeLog, Path: "/Account/staticIncomeLog", Body: BodyQuery, Auth: true},

	{Name: PaymentAccountList, Path: "/PaymentAccount/list", Auth: true},
	{Name: PaymentAccountAdd, Method: http.MethodPost, Path: "/PaymentAccount/add", Body: BodyForm, Auth: true},
	{Name: PaymentAccountEdit, Method: http.MethodPost, Path: "/PaymentAccount/edit", Body: BodyForm, Auth: true},
	{Name: PaymentAccountDelete, Method: http.MethodPost, Path: "/PaymentAccount/delete", Body: BodyForm, Auth: true},
	{Name: PaymentAccountSetDefault, Method: http.MethodPost, Path: "/PaymentAccount/setDefault", Body: BodyForm, Auth: true},

	{Name: RechargeCompanyAccounts, Path: "/Recharge/companyAccountList", Auth: true},
	{Name: RechargeSubmit, Method: http.MethodPost, Path: "/Recharge/submitOrder", Body: BodyForm, Auth: true},
	{Name: RechargeOrders, Path: "/Recharge/orderList", Body: BodyQuery, Auth: true},
	{Name: RechargeOrderDetail, Path: "/Recharge/orderDetail", Body: BodyQuery, Auth: true},
	{Name: WithdrawSubmit, Method: http.MethodPost, Path: "/Withdraw/submit", Body: BodyJSON, Auth: true},
	{Name: WithdrawRecords, Path: "/Withdraw/records", Body: BodyQuery, Auth: true},
	{Name: TransferSubmit, Method: http.MethodPost, Path: "/Transfer/submit", Body: BodyJSON, Auth: true},

	{Name: ShopProducts, Path: "/Shop/products", Body: BodyQuery},
	{Name: ShopProductDetail, Path: "/Shop/productDetail", Body: BodyQuery},
	{Name: ShopOrderCreate, Method: http.MethodPost, Path: "/ShopOrder/create", Body: BodyJSON, Auth: true},
	{Name: ShopOrderList, Path: "/ShopOrder/list", Body: BodyQuery, Auth: true},
	{Name: ShopOrderDetail, Path: "/ShopOrder/detail", Body: BodyQuery, Auth: true},
	{Name: ShopOrderCancel, Method: http.MethodPost, Path: "/ShopOrder/cancel", Body: BodyForm, Auth: true},
	{Name: ShopOrderConfirm, Method: http.MethodPost, Path: "/ShopOrder/confirm", Body: BodyForm, Auth: true},
	{Name: ShopOrderDelete, Method: http.MethodPost, Path: "/ShopOrder/delete", Body: BodyForm, Auth: true},
	{Name: AddressList, Path: "/Address/list", Auth: true},
	{Name: AddressDefault, Path: "/Address/getDefault", Auth: true},
	{Name: AddressAdd, Method: http.MethodPost, Path: "/Address/add", Body: BodyJSON, Auth: true},
	{Name: AddressEdit, Method: http.MethodPost, Path: "/Address/edit", Body: BodyJSON, Auth: true},
	{Name: AddressDelete, Method: http.MethodPost, Path: "/Address/delete", Body: BodyForm, Auth: true},

	{Name: CollectionItems, Path: "/Collection/items", Body: BodyQuery},
	{Name: CollectionDetail, Path: "/Collection/detail", Body: BodyQuery},
	{Name: CollectionBuy, Method: http.MethodPost, Path: "/Collection/buy", Body: BodyForm, Auth: true},
	{Name: CollectionMine, Path: "/Collection/myCollection", Body: BodyQuery, Auth: true},
	{Name: CollectionConsign, Method: http.MethodPost, Path: "/Collection/consign", Body: BodyForm, Auth: true},
	{Name: CollectionCancelConsign, Method: http.MethodPost, Path: "/Collection/cancelConsign", Body: BodyForm, Auth: true},
	{Name: CollectionConsignments, Path: "/Collection/consignmentList", Body: BodyQuery, Auth: true},
	{Name: CollectionDeliver, Method: http.MethodPost, Path: "/Collection/deliver", Body: BodyForm, Auth: true},
	{Name: ArtistList, Path: "/Artist/list", Body: BodyQuery},
	{Name: ArtistDetail, Path: "/Artist/detail", Body: BodyQuery},

	{Name: SignInInfo, Path: "/SignIn/info", Auth: true},
	{Name: SignInDo, Method: http.MethodPost, Path: "/SignIn/do", Body: BodyForm, Auth: true},
	{Name: SignInRewards, Path: "/SignIn/rewards", Body: BodyQuery, Auth: true},

	{Name: TeamOverview, Path: "/Team/overview", Auth: true},
	{Name: TeamMembers, Path: "/Team/members", Body: BodyQuery, Auth: true},
	{Name: TeamPromotionCard, Path: "/Team/promotionCard", Auth: true},

	{Name: CommonUpload, Method: http.MethodPost, Path: "/Common/upload", Body: BodyForm, Auth: true},

	// CMS and help center predate the code field.
	{Name: CmsPage, Path: "/Cms/page", Body: BodyQuery, Success: CodeOneOrAbsent},
	{Name: HelpCategories, Path: "/Help/categories", Success: CodeOneOrAbsent},
	{Name: HelpQuestions, Path: "/Help/questions", Body: BodyQuery, Success: CodeOneOrAbsent},

	{Name: NoticeList, Path: "/Notice/list", Body: BodyQuery},
	{Name: NoticeDetail, Path: "/Notice/detail", Body: BodyQuery},
}

var defaultTable = func() *Table {
	t, err := NewTable(defaultDescriptors...)
	if err != nil {
		panic(err)
	}
	return t
}()

// Default returns the platform's endpoint table.
func Default() *Table {
	return defaultTable
}
