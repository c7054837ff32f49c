package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/transport"

	"github.com/sirupsen/logrus"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadImage uploads an image as the multipart "file" part. The returned
// URL is already absolute, whichever field name the server used for it.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader, opts ...Option) (*common.Response[dto.UploadResult], error) {
	filename = strings.TrimSpace(filepath.Base(filename))
	if r == nil || filename == "" || filename == "." {
		return nil, invalidf("file", "please choose an image")
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, invalidf("file", "only jpg, png, gif and webp images can be uploaded")
	}

	form := transport.NewFormData().AppendFile("file", filename, r)
	raw, err := invoke[json.RawMessage](ctx, c, endpoint.CommonUpload, payload{form: form}, opts)
	if err != nil {
		if raw == nil {
			return nil, err
		}
		return &common.Response[dto.UploadResult]{Code: raw.Code, Msg: raw.Msg, Time: raw.Time}, err
	}

	out := &common.Response[dto.UploadResult]{Code: raw.Code, Msg: raw.Msg, Time: raw.Time}
	result, ok := dto.DecodeUpload(raw.Data, c.target.AssetURL)
	if !ok {
		c.log.WithField("data", string(raw.Data)).Error("upload_missing_url")
		return out, fmt.Errorf("upload succeeded but the response carried no file URL")
	}
	out.Data = result
	c.log.WithFields(logrus.Fields{"file": filename, "url": result.URL}).Debug("image_uploaded")
	return out, nil
}
