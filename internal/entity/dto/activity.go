package dto

import "collectibles/internal/entity/common"

// SignInInfoData is the sign-in calendar state.
type SignInInfoData struct {
	IsSigned     common.Flag        `json:"is_signed"`
	ContinueDays common.Int         `json:"continue_days"`
	TotalDays    common.Int         `json:"total_days"`
	TodayReward  common.Amount      `json:"today_reward"`
	SignedDates  common.StringArray `json:"signed_dates"`
	RewardType   string             `json:"reward_type"`
}

// SignInResult is returned after signing in.
type SignInResult struct {
	Reward       common.Amount `json:"reward"`
	ContinueDays common.Int    `json:"continue_days"`
}

// SignInRewardItem is one historical sign-in reward.
type SignInRewardItem struct {
	ID         common.ID     `json:"id"`
	Reward     common.Amount `json:"reward"`
	Memo       string        `json:"memo"`
	CreateTime common.Unix   `json:"createtime"`
}

// TeamOverviewData summarises the user's referral team.
type TeamOverviewData struct {
	DirectCount common.Int    `json:"direct_count"`
	TeamCount   common.Int    `json:"team_count"`
	TeamIncome  common.Amount `json:"team_income"`
	InviteCode  string        `json:"invite_code"`
}

// TeamMemberQuery filters team members by referral level.
type TeamMemberQuery struct {
	common.BaseParams
	Level int64
}

// TeamMember is one referred user.
type TeamMember struct {
	ID         common.ID   `json:"id"`
	Nickname   string      `json:"nickname"`
	Mobile     string      `json:"mobile"`
	Avatar     string      `json:"avatar"`
	Level      common.Int  `json:"level"`
	IsRealName common.Flag `json:"is_real_name"`
	JoinTime   common.Unix `json:"jointime"`
}

// PromotionCard is the referral share card.
type PromotionCard struct {
	InviteCode string `json:"invite_code"`
	InviteURL  string `json:"invite_url"`
	Poster     string `json:"poster"`
	QRCode     string `json:"qrcode"`
}
