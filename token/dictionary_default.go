package token

import "sync"

// Built-in tables of 1/com.sprintpcs/1.
// Entries 0x00-0x7F of primary table are reachable with single byte,
// keep the hottest strings there.
var defaultPrimary = []string{
	// 0x00 methods
	"INVITE", "ACK", "BYE", "CANCEL", "REGISTER", "OPTIONS", "SUBSCRIBE", "NOTIFY",
	"REFER", "INFO", "MESSAGE", "PRACK", "UPDATE", "PUBLISH", "SIP", "2.0",
	// 0x10 reason phrases
	"Trying", "Ringing", "Session Progress", "OK", "Accepted", "Moved Temporarily", "Bad Request", "Unauthorized",
	"Forbidden", "Not Found", "Proxy Authentication Required", "Request Timeout", "Temporarily Unavailable", "Call/Transaction Does Not Exist", "Busy Here", "Request Terminated",
	// 0x20 parameter names
	"tag", "branch", "transport", "user", "phone", "lr", "rport", "received",
	"maddr", "ttl", "method", "expires", "q", "refresher", "uac", "uas",
	// 0x30 transport and scheme tokens
	"udp", "tcp", "tls", "sctp", "ws", "wss", "sip", "sips",
	"tel", "UDP", "TCP", "TLS", "z9hG4bK", "phone-context", "ob", "gr",
	// 0x40 sdp
	"application", "sdp", "IN", "IP4", "IP6", "RTP/AVP", "audio", "video",
	"rtpmap", "fmtp", "sendrecv", "sendonly", "recvonly", "inactive", "ptime", "-",
	// 0x50 codecs and numbers
	"0", "1", "8", "18", "101", "0-15", "0-16", "PCMU/8000",
	"PCMA/8000", "telephone-event/8000", "G729/8000", "AMR/8000", "EVRC/8000", "60", "70", "3600",
	// 0x60 auth
	"Digest", "MD5", "auth", "realm", "nonce", "uri", "response", "algorithm",
	"qop", "opaque", "username", "cnonce", "nc", "stale", "true", "false",
	// 0x70 options and events
	"100rel", "timer", "replaces", "path", "norefersub", "presence", "message-summary", "refer",
	"active", "pending", "terminated", "none", "session", "header", "id", "critical",

	// 0x80 reachable only with 0x91
	"Not Acceptable Here", "Server Internal Error", "Service Unavailable", "Decline", "Call Is Being Forwarded", "Queued", "Unsupported Media Type", "Method Not Allowed",
	"Address Incomplete", "Not Implemented", "Bad Gateway", "Server Time-out", "Busy Everywhere", "Does Not Exist Anywhere", "Not Acceptable", "Gone",
	"text", "plain", "html", "xml", "multipart", "mixed", "message", "sipfrag",
	"pidf+xml", "simple-message-summary", "reginfo+xml", "dialog-info+xml", "application/sdp", "boundary", "handling", "optional",
	"required", "render", "alert", "icon", "card", "info", "purpose", "cause",
	"text", "Q.850", "reason", "duration", "retry-after", "expires", "probation", "rejected",
	"deactivated", "timeout", "giveup", "noresource", "invariant", "reg", "dialog", "winfo",
	"presence.winfo", "conference", "keep-alive", "outbound", "gruu", "histinfo", "join", "tdialog",
	"early-session", "precondition", "resource-priority", "sec-agree", "ipsec-3gpp", "mediasec", "from-change", "answermode",
	"Sprint PCS", "sprintpcs.com", "pcs.sprintpcs.com", "localhost", "anonymous", "Anonymous", "anonymous.invalid", "unknown",
}

var defaultSecondary = []string{
	// 0x00 sdp attributes
	"silenceSupp", "maxptime", "framerate", "orient", "type", "charset", "sdplang", "lang",
	"quality", "rtcp", "rtcp-mux", "mid", "group", "ssrc", "candidate", "ice-ufrag",
	"ice-pwd", "fingerprint", "setup", "connection", "crypto", "curr", "des", "conf",
	"mode-set", "octet-align", "annexb", "annexb=no", "mode-change-period", "off", "on", "-",
	// 0x20 codecs
	"AMR-WB/16000", "G722/8000", "GSM/8000", "iLBC/8000", "SMV/8000", "EVRC0/8000", "EVRCB/8000", "H263/90000",
	"H264/90000", "MP4V-ES/90000", "opus/48000/2", "RTP/SAVP", "RTP/AVPF", "UDP/TLS/RTP/SAVPF", "TCP/MSRP", "TCP/TLS/MSRP",
	// 0x30 misc
	"curr:qos", "des:qos", "local", "remote", "mandatory", "sendrecv", "e2e", "none",
	"X-nat", "X-sprint", "accept-types", "path", "message/cpim", "text/plain", "image/jpeg", "*",
}

var (
	defaultDictionary     *StaticDictionary
	defaultDictionaryOnce sync.Once
)

// DefaultDictionary returns built-in dictionary 1/com.sprintpcs/1.
func DefaultDictionary() *StaticDictionary {
	defaultDictionaryOnce.Do(func() {
		d, err := NewStaticDictionary(DefaultDictionaryName, defaultPrimary, defaultSecondary)
		if err != nil {
			panic(err)
		}
		defaultDictionary = d
	})
	return defaultDictionary
}
