package constants

import (
	"fmt"
	"regexp"
)

const (
	AppName    = "ordinals"
	ProtocolId = "ord"

	InscriptionIdDelimiter = "i"
	OutpointDelimiter      = ":"
	IdRegexpContent        = `^[a-f0-9]{64}%s\d+$`
)

var (
	InscriptionIdRegexp = regexp.MustCompile(fmt.Sprintf(IdRegexpContent, InscriptionIdDelimiter))
	OutpointRegexp      = regexp.MustCompile(fmt.Sprintf(IdRegexpContent, OutpointDelimiter))
)

type ContentType string

func (t ContentType) String() string {
	return string(t)
}

// MediaType returns the media kind for a known content type, MediaUnknown otherwise.
func (t ContentType) MediaType() MediaType {
	for _, media := range Medias {
		if media.ContentType == t {
			return media.MediaType
		}
	}
	return MediaUnknown
}

const (
	ContentTypeCbor             ContentType = "application/cbor"
	ContentTypeJson             ContentType = "application/json"
	ContentTypeOctetStream      ContentType = "application/octet-stream"
	ContentTypePdf              ContentType = "application/pdf"
	ContentTypePgpSignature     ContentType = "application/pgp-signature"
	ContentTypeYaml             ContentType = "application/yaml"
	ContentTypeAudioMpeg        ContentType = "audio/mpeg"
	ContentTypeImageGif         ContentType = "image/gif"
	ContentTypeImageJpeg        ContentType = "image/jpeg"
	ContentTypeImagePng         ContentType = "image/png"
	ContentTypeImageSvgXml      ContentType = "image/svg+xml"
	ContentTypeImageWebp        ContentType = "image/webp"
	ContentTypeModelGltfBinary  ContentType = "model/gltf-binary"
	ContentTypeTextCss          ContentType = "text/css"
	ContentTypeTextHtml         ContentType = "text/html"
	ContentTypeTextHtmlUtf8     ContentType = "text/html;charset=utf-8"
	ContentTypeTextJs           ContentType = "text/javascript"
	ContentTypeTextMarkdown     ContentType = "text/markdown"
	ContentTypeTextMarkdownUtf8 ContentType = "text/markdown;charset=utf-8"
	ContentTypeTextPlain        ContentType = "text/plain"
	ContentTypeTextPlainUtf8    ContentType = "text/plain;charset=utf-8"
	ContentTypeVideoMp4         ContentType = "video/mp4"
)

type MediaType string

func (m MediaType) String() string {
	return string(m)
}

const (
	MediaUnknown    MediaType = "unknown"
	MediaAudio      MediaType = "audio"
	MediaCss        MediaType = "css"
	MediaJavaScript MediaType = "javascript"
	MediaJson       MediaType = "json"
	MediaYaml       MediaType = "yaml"
	MediaIframe     MediaType = "iframe"
	MediaImage      MediaType = "image"
	MediaMarkdown   MediaType = "markdown"
	MediaModel      MediaType = "model"
	MediaPdf        MediaType = "pdf"
	MediaText       MediaType = "text"
	MediaVideo      MediaType = "video"
)

type Media struct {
	ContentType ContentType
	MediaType   MediaType
}

var Medias = []Media{
	{ContentTypeCbor, MediaUnknown},
	{ContentTypeJson, MediaJson},
	{ContentTypeOctetStream, MediaUnknown},
	{ContentTypePdf, MediaPdf},
	{ContentTypePgpSignature, MediaText},
	{ContentTypeYaml, MediaYaml},
	{ContentTypeAudioMpeg, MediaAudio},
	{ContentTypeImageGif, MediaImage},
	{ContentTypeImageJpeg, MediaImage},
	{ContentTypeImagePng, MediaImage},
	{ContentTypeImageSvgXml, MediaIframe},
	{ContentTypeImageWebp, MediaImage},
	{ContentTypeModelGltfBinary, MediaModel},
	{ContentTypeTextCss, MediaCss},
	{ContentTypeTextHtml, MediaIframe},
	{ContentTypeTextHtmlUtf8, MediaIframe},
	{ContentTypeTextJs, MediaJavaScript},
	{ContentTypeTextMarkdown, MediaMarkdown},
	{ContentTypeTextMarkdownUtf8, MediaMarkdown},
	{ContentTypeTextPlain, MediaText},
	{ContentTypeTextPlainUtf8, MediaText},
	{ContentTypeVideoMp4, MediaVideo},
}
