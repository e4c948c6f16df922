package token

import (
	"sort"
	"strings"
)

// HeaderType identifies SIP header known to the codec.
type HeaderType uint16

const (
	HeaderNone HeaderType = iota
	HeaderUnknown

	HeaderAccept
	HeaderAcceptContact
	HeaderAcceptEncoding
	HeaderAcceptLanguage
	HeaderAcceptResourcePriority
	HeaderAlertInfo
	HeaderAllow
	HeaderAllowEvents
	HeaderAnswerMode
	HeaderAuthenticationInfo
	HeaderAuthorization
	HeaderCallID
	HeaderCallInfo
	HeaderContact
	HeaderContentDisposition
	HeaderContentEncoding
	HeaderContentID
	HeaderContentLanguage
	HeaderContentLength
	HeaderContentType
	HeaderCSeq
	HeaderDate
	HeaderDiversion
	HeaderEncryption
	HeaderErrorInfo
	HeaderEvent
	HeaderExpires
	HeaderFeatureCaps
	HeaderFlowTimer
	HeaderFrom
	HeaderGeolocation
	HeaderHide
	HeaderHistoryInfo
	HeaderIdentity
	HeaderIdentityInfo
	HeaderInReplyTo
	HeaderInfoPackage
	HeaderJoin
	HeaderMaxBreadth
	HeaderMaxForwards
	HeaderMIMEVersion
	HeaderMinExpires
	HeaderMinSE
	HeaderOrganization
	HeaderPAccessNetworkInfo
	HeaderPAssertedIdentity
	HeaderPAssociatedURI
	HeaderPCalledPartyID
	HeaderPChargingFunctionAddresses
	HeaderPChargingVector
	HeaderPEarlyMedia
	HeaderPMediaAuthorization
	HeaderPPreferredIdentity
	HeaderPProfileKey
	HeaderPServedUser
	HeaderPVisitedNetworkID
	HeaderPath
	HeaderPermissionMissing
	HeaderPolicyContact
	HeaderPriority
	HeaderPrivAnswerMode
	HeaderPrivacy
	HeaderProxyAuthenticate
	HeaderProxyAuthorization
	HeaderProxyRequire
	HeaderRAck
	HeaderRSeq
	HeaderReason
	HeaderRecordRoute
	HeaderRecvInfo
	HeaderReferSub
	HeaderReferTo
	HeaderReferredBy
	HeaderRejectContact
	HeaderRemotePartyID
	HeaderReplaces
	HeaderReplyTo
	HeaderRequestDisposition
	HeaderRequire
	HeaderResourcePriority
	HeaderResponseKey
	HeaderRetryAfter
	HeaderRoute
	HeaderSIPETag
	HeaderSIPIfMatch
	HeaderSecurityClient
	HeaderSecurityServer
	HeaderSecurityVerify
	HeaderServer
	HeaderServiceRoute
	HeaderSessionExpires
	HeaderSessionID
	HeaderSubject
	HeaderSubscriptionState
	HeaderSupported
	HeaderSuppressIfMatch
	HeaderTargetDialog
	HeaderTimestamp
	HeaderTo
	HeaderTriggerConsent
	HeaderUnsupported
	HeaderUserAgent
	HeaderVia
	HeaderWWWAuthenticate
	HeaderWarning

	headerTypeCount
)

// family selects decoder used for fixed format of header.
type family uint8

const (
	familyNone family = iota
	familyURL
	familyCSeq
	familyCallID
	familyVia
	familyTokenParams
	familyMediaType
	familyDateOrLong
	familyDigest
	familyString
)

type headerDef struct {
	name    string
	family  family
	blocked bool
}

var headerDefs = [headerTypeCount]headerDef{
	HeaderAccept:                     {"Accept", familyMediaType, false},
	HeaderAcceptContact:              {"Accept-Contact", familyTokenParams, false},
	HeaderAcceptEncoding:             {"Accept-Encoding", familyTokenParams, false},
	HeaderAcceptLanguage:             {"Accept-Language", familyTokenParams, false},
	HeaderAcceptResourcePriority:     {"Accept-Resource-Priority", familyTokenParams, false},
	HeaderAlertInfo:                  {"Alert-Info", familyTokenParams, false},
	HeaderAllow:                      {"Allow", familyTokenParams, false},
	HeaderAllowEvents:                {"Allow-Events", familyTokenParams, false},
	HeaderAnswerMode:                 {"Answer-Mode", familyTokenParams, false},
	HeaderAuthenticationInfo:         {"Authentication-Info", familyString, false},
	HeaderAuthorization:              {"Authorization", familyDigest, false},
	HeaderCallID:                     {"Call-ID", familyCallID, false},
	HeaderCallInfo:                   {"Call-Info", familyTokenParams, false},
	HeaderContact:                    {"Contact", familyURL, false},
	HeaderContentDisposition:         {"Content-Disposition", familyTokenParams, false},
	HeaderContentEncoding:            {"Content-Encoding", familyTokenParams, false},
	HeaderContentID:                  {"Content-ID", familyString, false},
	HeaderContentLanguage:            {"Content-Language", familyTokenParams, false},
	HeaderContentLength:              {"Content-Length", familyDateOrLong, true},
	HeaderContentType:                {"Content-Type", familyMediaType, false},
	HeaderCSeq:                       {"CSeq", familyCSeq, false},
	HeaderDate:                       {"Date", familyDateOrLong, false},
	HeaderDiversion:                  {"Diversion", familyURL, false},
	HeaderEncryption:                 {"Encryption", familyString, true},
	HeaderErrorInfo:                  {"Error-Info", familyTokenParams, false},
	HeaderEvent:                      {"Event", familyTokenParams, false},
	HeaderExpires:                    {"Expires", familyDateOrLong, false},
	HeaderFeatureCaps:                {"Feature-Caps", familyTokenParams, false},
	HeaderFlowTimer:                  {"Flow-Timer", familyDateOrLong, false},
	HeaderFrom:                       {"From", familyURL, false},
	HeaderGeolocation:                {"Geolocation", familyURL, false},
	HeaderHide:                       {"Hide", familyString, true},
	HeaderHistoryInfo:                {"History-Info", familyURL, false},
	HeaderIdentity:                   {"Identity", familyString, false},
	HeaderIdentityInfo:               {"Identity-Info", familyTokenParams, false},
	HeaderInReplyTo:                  {"In-Reply-To", familyString, false},
	HeaderInfoPackage:                {"Info-Package", familyTokenParams, false},
	HeaderJoin:                       {"Join", familyTokenParams, false},
	HeaderMaxBreadth:                 {"Max-Breadth", familyDateOrLong, false},
	HeaderMaxForwards:                {"Max-Forwards", familyDateOrLong, false},
	HeaderMIMEVersion:                {"MIME-Version", familyString, false},
	HeaderMinExpires:                 {"Min-Expires", familyDateOrLong, false},
	HeaderMinSE:                      {"Min-SE", familyTokenParams, false},
	HeaderOrganization:               {"Organization", familyString, false},
	HeaderPAccessNetworkInfo:         {"P-Access-Network-Info", familyTokenParams, false},
	HeaderPAssertedIdentity:          {"P-Asserted-Identity", familyURL, false},
	HeaderPAssociatedURI:             {"P-Associated-URI", familyURL, false},
	HeaderPCalledPartyID:             {"P-Called-Party-ID", familyURL, false},
	HeaderPChargingFunctionAddresses: {"P-Charging-Function-Addresses", familyTokenParams, false},
	HeaderPChargingVector:            {"P-Charging-Vector", familyTokenParams, false},
	HeaderPEarlyMedia:                {"P-Early-Media", familyTokenParams, false},
	HeaderPMediaAuthorization:        {"P-Media-Authorization", familyString, false},
	HeaderPPreferredIdentity:         {"P-Preferred-Identity", familyURL, false},
	HeaderPProfileKey:                {"P-Profile-Key", familyURL, false},
	HeaderPServedUser:                {"P-Served-User", familyURL, false},
	HeaderPVisitedNetworkID:          {"P-Visited-Network-ID", familyString, false},
	HeaderPath:                       {"Path", familyURL, false},
	HeaderPermissionMissing:          {"Permission-Missing", familyTokenParams, false},
	HeaderPolicyContact:              {"Policy-Contact", familyTokenParams, false},
	HeaderPriority:                   {"Priority", familyTokenParams, false},
	HeaderPrivAnswerMode:             {"Priv-Answer-Mode", familyTokenParams, false},
	HeaderPrivacy:                    {"Privacy", familyTokenParams, false},
	HeaderProxyAuthenticate:          {"Proxy-Authenticate", familyDigest, false},
	HeaderProxyAuthorization:         {"Proxy-Authorization", familyDigest, false},
	HeaderProxyRequire:               {"Proxy-Require", familyTokenParams, false},
	HeaderRAck:                       {"RAck", familyString, false},
	HeaderRSeq:                       {"RSeq", familyDateOrLong, false},
	HeaderReason:                     {"Reason", familyTokenParams, false},
	HeaderRecordRoute:                {"Record-Route", familyURL, false},
	HeaderRecvInfo:                   {"Recv-Info", familyTokenParams, false},
	HeaderReferSub:                   {"Refer-Sub", familyTokenParams, false},
	HeaderReferTo:                    {"Refer-To", familyURL, false},
	HeaderReferredBy:                 {"Referred-By", familyURL, false},
	HeaderRejectContact:              {"Reject-Contact", familyTokenParams, false},
	HeaderRemotePartyID:              {"Remote-Party-ID", familyURL, false},
	HeaderReplaces:                   {"Replaces", familyTokenParams, false},
	HeaderReplyTo:                    {"Reply-To", familyURL, false},
	HeaderRequestDisposition:         {"Request-Disposition", familyTokenParams, false},
	HeaderRequire:                    {"Require", familyTokenParams, false},
	HeaderResourcePriority:           {"Resource-Priority", familyTokenParams, false},
	HeaderResponseKey:                {"Response-Key", familyString, true},
	HeaderRetryAfter:                 {"Retry-After", familyTokenParams, false},
	HeaderRoute:                      {"Route", familyURL, false},
	HeaderSIPETag:                    {"SIP-ETag", familyString, false},
	HeaderSIPIfMatch:                 {"SIP-If-Match", familyString, false},
	HeaderSecurityClient:             {"Security-Client", familyTokenParams, false},
	HeaderSecurityServer:             {"Security-Server", familyTokenParams, false},
	HeaderSecurityVerify:             {"Security-Verify", familyTokenParams, false},
	HeaderServer:                     {"Server", familyString, false},
	HeaderServiceRoute:               {"Service-Route", familyURL, false},
	HeaderSessionExpires:             {"Session-Expires", familyTokenParams, false},
	HeaderSessionID:                  {"Session-ID", familyTokenParams, false},
	HeaderSubject:                    {"Subject", familyString, false},
	HeaderSubscriptionState:          {"Subscription-State", familyTokenParams, false},
	HeaderSupported:                  {"Supported", familyTokenParams, false},
	HeaderSuppressIfMatch:            {"Suppress-If-Match", familyString, false},
	HeaderTargetDialog:               {"Target-Dialog", familyTokenParams, false},
	HeaderTimestamp:                  {"Timestamp", familyString, false},
	HeaderTo:                         {"To", familyURL, false},
	HeaderTriggerConsent:             {"Trigger-Consent", familyURL, false},
	HeaderUnsupported:                {"Unsupported", familyTokenParams, false},
	HeaderUserAgent:                  {"User-Agent", familyString, false},
	HeaderVia:                        {"Via", familyVia, false},
	HeaderWWWAuthenticate:            {"WWW-Authenticate", familyDigest, false},
	HeaderWarning:                    {"Warning", familyString, false},
}

// shortcuts maps 0xC0-0xDF onto hot headers.
var shortcuts = [int(ctxShortcutLast-ctxShortcutFirst) + 1]HeaderType{
	HeaderVia,
	HeaderFrom,
	HeaderTo,
	HeaderCallID,
	HeaderCSeq,
	HeaderContact,
	HeaderMaxForwards,
	HeaderContentType,
	HeaderContentLength,
	HeaderRoute,
	HeaderRecordRoute,
	HeaderExpires,
	HeaderAllow,
	HeaderSupported,
	HeaderRequire,
	HeaderUserAgent,
	HeaderServer,
	HeaderAccept,
	HeaderProxyAuthenticate,
	HeaderProxyAuthorization,
	HeaderWWWAuthenticate,
	HeaderAuthorization,
	HeaderEvent,
	HeaderSubscriptionState,
	HeaderAllowEvents,
	HeaderSessionExpires,
	HeaderPAssertedIdentity,
	HeaderDate,
	HeaderReferTo,
	HeaderReferredBy,
	HeaderPrivacy,
	HeaderMinExpires,
}

var (
	headerToShortcut [headerTypeCount]byte
	// knownHeaders is indexed by known header byte, slot 0 unused
	knownHeaders     []HeaderType
	headerToKnownIdx [headerTypeCount]byte
	headerByName     map[string]HeaderType
)

func init() {
	for i, h := range shortcuts {
		headerToShortcut[h] = ctxShortcutFirst + byte(i)
	}

	// Known header index follows alphabetical order of canonical names
	sorted := make([]HeaderType, 0, headerTypeCount)
	headerByName = make(map[string]HeaderType, headerTypeCount)
	for h := HeaderAccept; h < headerTypeCount; h++ {
		sorted = append(sorted, h)
		headerByName[strings.ToLower(headerDefs[h].name)] = h
	}
	sort.Slice(sorted, func(i, j int) bool {
		return headerDefs[sorted[i]].name < headerDefs[sorted[j]].name
	})

	knownHeaders = make([]HeaderType, 1, len(sorted)+1)
	knownHeaders = append(knownHeaders, sorted...)
	for idx, h := range knownHeaders {
		if idx == 0 {
			continue
		}
		headerToKnownIdx[h] = byte(idx)
	}
}

func (h HeaderType) String() string {
	switch {
	case h == HeaderNone:
		return "none"
	case h == HeaderUnknown:
		return "unknown"
	case h < headerTypeCount:
		return headerDefs[h].name
	}
	return "invalid"
}

func (h HeaderType) family() family {
	if h < headerTypeCount {
		return headerDefs[h].family
	}
	return familyNone
}

// HeaderByName finds header type by canonical name, case insensitive.
func HeaderByName(name string) (HeaderType, bool) {
	h, ok := headerByName[strings.ToLower(name)]
	return h, ok
}

// ShortcutToHeader maps shortcut byte to header type. Bytes outside
// shortcut range return false.
func ShortcutToHeader(b byte) (HeaderType, bool) {
	if b < ctxShortcutFirst || b > ctxShortcutLast {
		return HeaderUnknown, false
	}
	h := shortcuts[b-ctxShortcutFirst]
	return h, h != HeaderNone
}

// HeaderToShortcut is inverse of ShortcutToHeader.
func HeaderToShortcut(h HeaderType) (byte, bool) {
	if h >= headerTypeCount {
		return 0, false
	}
	b := headerToShortcut[h]
	return b, b != 0
}

// KnownIndexToHeader maps index byte following known header marker.
func KnownIndexToHeader(idx byte) (HeaderType, bool) {
	if idx == 0 || int(idx) >= len(knownHeaders) {
		return HeaderUnknown, false
	}
	return knownHeaders[idx], true
}

// HeaderToKnownIndex is inverse of KnownIndexToHeader.
func HeaderToKnownIndex(h HeaderType) (byte, bool) {
	if h >= headerTypeCount {
		return 0, false
	}
	idx := headerToKnownIdx[h]
	return idx, idx != 0
}

// IsFixedFormatURIHeader reports headers whose fixed format is name-address.
func IsFixedFormatURIHeader(h HeaderType) bool {
	return h.family() == familyURL
}

// IsBlockedHeader reports headers that are decoded but never delivered.
func IsBlockedHeader(h HeaderType) bool {
	return h < headerTypeCount && headerDefs[h].blocked
}
