package cookie

import (
	"net/http"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		cookies string
		key     string
		want    string
		wantOK  bool
	}{
		{name: "single", cookies: "csrftoken=abc123", key: "csrftoken", want: "abc123", wantOK: true},
		{name: "among several", cookies: "sessionid=s1; csrftoken=tok; theme=dark", key: "csrftoken", want: "tok", wantOK: true},
		{name: "whitespace", cookies: "  sessionid=s1 ;   csrftoken=tok  ", key: "csrftoken", want: "tok", wantOK: true},
		{name: "no space separator", cookies: "a=1;csrftoken=tok", key: "csrftoken", want: "tok", wantOK: true},
		{name: "percent decoded", cookies: "csrftoken=a%20b%3Dc", key: "csrftoken", want: "a b=c", wantOK: true},
		{name: "plus kept", cookies: "csrftoken=a+b", key: "csrftoken", want: "a+b", wantOK: true},
		{name: "bad escape kept raw", cookies: "csrftoken=%zz", key: "csrftoken", want: "%zz", wantOK: true},
		{name: "empty value", cookies: "csrftoken=", key: "csrftoken", want: "", wantOK: true},
		{name: "first match wins", cookies: "csrftoken=one; csrftoken=two", key: "csrftoken", want: "one", wantOK: true},
		{name: "prefix is not a match", cookies: "xcsrftoken=nope; csrftokens=nope", key: "csrftoken", wantOK: false},
		{name: "missing", cookies: "sessionid=s1", key: "csrftoken", wantOK: false},
		{name: "empty string", cookies: "", key: "csrftoken", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(tt.cookies, tt.key)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinAndParse(t *testing.T) {
	parsed := Parse(" csrftoken=tok ; broken ; =x; sessionid=s1")
	if len(parsed) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(parsed))
	}

	joined := Join([]*http.Cookie{{Name: "csrftoken", Value: "tok"}, {Name: "sessionid", Value: "s1"}})
	if joined != "csrftoken=tok; sessionid=s1" {
		t.Fatalf("Join = %q", joined)
	}
	if got, ok := Get(joined, "sessionid"); !ok || got != "s1" {
		t.Fatalf("round trip lost sessionid: %q %v", got, ok)
	}
}
