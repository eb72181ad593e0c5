package routes

import (
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

type uploadInput struct {
	Data     string `json:"data" validate:"required"` // base64 data URL or raw base64
	PublicID string `json:"public_id"`                // optional
}

// UploadImage handles base64 image upload to the media CDN. The server
// never persists the bytes; the hosted URL comes back to the client.
func UploadImage(ctx iris.Context) {
	var in uploadInput
	if err := ctx.ReadJSON(&in); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	res := storage.UploadBase64Image(in.Data, in.PublicID)
	url := res["url"]
	if url == "" {
		utils.CreateUpstreamError(ctx)
		return
	}
	ctx.JSON(iris.Map{"url": url})
}
