package dto

import (
	"encoding/json"

	"collectibles/internal/entity/common"
)

// CMS page kinds.
const (
	PageAbout     = "about"
	PagePrivacy   = "privacy"
	PageAgreement = "agreement"
)

// CmsPage is a static content page.
type CmsPage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HelpCategory groups help-center questions.
type HelpCategory struct {
	ID   common.ID `json:"id"`
	Name string    `json:"name"`
}

// HelpQuestion is one help-center entry.
type HelpQuestion struct {
	ID         common.ID `json:"id"`
	CategoryID common.ID `json:"category_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
}

// Notice is a platform announcement or message.
type Notice struct {
	ID         common.ID   `json:"id"`
	Type       string      `json:"type"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	CreateTime common.Unix `json:"createtime"`
}

// NoticeQuery filters notices by type.
type NoticeQuery struct {
	common.BaseParams
	Type string
}

var uploadURLAliases = common.Aliases{"url", "fullurl", "full_url", "path"}

// UploadResult is the canonical upload response. URL is already absolute.
type UploadResult struct {
	URL string `json:"url"`
	// Raw is the untouched path the server returned.
	Raw string `json:"raw"`
}

// DecodeUpload resolves the upload URL from the ordered aliases and applies
// normalise to it.
func DecodeUpload(data json.RawMessage, normalise func(string) string) (UploadResult, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Some servers return the path as a bare string.
		var s string
		if json.Unmarshal(data, &s) != nil || s == "" {
			return UploadResult{}, false
		}
		return UploadResult{URL: normalise(s), Raw: s}, true
	}
	raw := uploadURLAliases.String(fields)
	if raw == "" {
		return UploadResult{}, false
	}
	return UploadResult{URL: normalise(raw), Raw: raw}, true
}
