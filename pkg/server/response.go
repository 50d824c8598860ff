package server

import "strconv"

// Responses are assembled by hand because the service never reads the
// request: net/http's server machinery insists on parsing a request
// line first, which would change the observable any-input-same-output
// contract.

const contentType = "text/plain; charset=utf-8"

// okResponse frames a 200 response around the generated body.
func okResponse(body []byte) []byte {
	return appendResponse("200 OK", body)
}

// errorResponse frames the fixed 500 response used when generation fails.
func errorResponse() []byte {
	return appendResponse("500 Internal Server Error", []byte("fortune generation failed\n"))
}

func appendResponse(status string, body []byte) []byte {
	buf := make([]byte, 0, len(body)+128)
	buf = append(buf, "HTTP/1.1 "+status+"\r\n"...)
	buf = append(buf, "Content-Type: "+contentType+"\r\n"...)
	buf = append(buf, "Content-Length: "+strconv.Itoa(len(body))+"\r\n"...)
	buf = append(buf, "Connection: close\r\n"...)
	buf = append(buf, "\r\n"...)
	buf = append(buf, body...)
	return buf
}
