package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const documentField = "file"

// UploadDocument streams doc as multipart/form-data. The body is produced
// while the request is in flight, so it goes out with chunked encoding.
func (c *httpClient) UploadDocument(ctx context.Context, doc Document) (UploadResult, error) {
	src, err := doc.Open()
	if err != nil {
		return UploadResult{}, fmt.Errorf("open %s: %w", doc.Name(), err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer src.Close()
		pw.CloseWithError(writeDocumentPart(mw, doc, src))
	}()

	req, err := c.newRequest(ctx, pathUpload, pr)
	if err != nil {
		pr.Close()
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(req, pathUpload, &result); err != nil {
		pr.CloseWithError(err)
		return UploadResult{}, err
	}
	return result, nil
}

// SubmitDocumentForm performs a native-style form post: the whole multipart
// body is built first and sent with an explicit Content-Length. The response
// is returned as a page rather than decoded strictly.
func (c *httpClient) SubmitDocumentForm(ctx context.Context, doc Document) (NativePage, error) {
	src, err := doc.Open()
	if err != nil {
		return NativePage{}, fmt.Errorf("open %s: %w", doc.Name(), err)
	}
	defer src.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeDocumentPart(mw, doc, src); err != nil {
		return NativePage{}, err
	}

	req, err := c.newRequest(ctx, pathUpload, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return NativePage{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "text/html,application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[backend] %s native submission transport error: %v", pathUpload, err)
		return NativePage{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return NativePage{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	page := NativePage{Status: resp.StatusCode, Body: string(body)}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		var result UploadResult
		if err := json.Unmarshal(body, &result); err == nil && result.Text != "" {
			page.Note = &result
		}
	}
	return page, nil
}

func writeDocumentPart(mw *multipart.Writer, doc Document, src io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, documentField, escapeQuotes(doc.Name())))
	contentType := doc.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", doc.Name(), err)
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
