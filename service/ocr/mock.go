package ocr

// Canned analysis payloads returned in mock mode and on upstream failure.
// The sample document is an employment contract, the most common upload.
var mockResults = map[string]Result{
	"ko-vi": {
		DocumentType:   "근로계약서 (테스트)",
		OriginalText:   "근로 계약서\n\n본 계약은 ○○○ 회사(이하 '사용자')와 ○○○(이하 '근로자') 간에 체결된다.\n\n제1조 (근로계약기간)\n2024년 1월 1일부터 2024년 12월 31일까지\n\n제2조 (근무장소)\n서울특별시 강남구 테헤란로 123\n\n제3조 (임금)\n월 기본급: 3,000,000원\n상여금: 연 400%\n\n제4조 (근무시간)\n주 40시간 (월-금 09:00-18:00)",
		TranslatedText: "Hợp đồng lao động (Test)\n\nHợp đồng này được ký kết giữa Công ty ○○○ (sau đây gọi là 'Người sử dụng lao động') và ○○○ (sau đây gọi là 'Người lao động').\n\nĐiều 1 (Thời hạn hợp đồng)\nTừ ngày 1 tháng 1 năm 2024 đến ngày 31 tháng 12 năm 2024\n\nĐiều 2 (Nơi làm việc)\n123 Teheran-ro, Gangnam-gu, Seoul\n\nĐiều 3 (Lương)\nLương cơ bản hàng tháng: 3,000,000 won\nThưởng: 400% hàng năm\n\nĐiều 4 (Giờ làm việc)\n40 giờ mỗi tuần (Thứ Hai-Thứ Sáu 09:00-18:00)",
		Summary:        "Đây là hợp đồng lao động có thời hạn 1 năm (2024) giữa Công ty ○○○ và người lao động. Lương cơ bản 3 triệu won/tháng, thưởng 400%/năm, làm việc 40 giờ/tuần tại Gangnam, Seoul. (Dữ liệu mẫu cho mục đích thử nghiệm)",
		KeyInfo: KeyInfo{
			Company: "○○○ 주식회사",
			Date:    "2024년 1월 1일",
			Amount:  "월 3,000,000원 + 상여금 연 400%",
			Period:  "2024.01.01 ~ 2024.12.31",
			Conditions: []string{
				"주 40시간 근무 (월-금 09:00-18:00)",
				"4대 보험 가입",
				"연차 15일 제공",
				"근무지: 서울 강남구",
			},
		},
	},
	"ko-en": {
		DocumentType:   "Employment Contract (Test)",
		OriginalText:   "근로 계약서\n\n본 계약은 ○○○ 회사와 ○○○ 간에 체결된다.\n\n제1조: 2024년 1월 1일부터 12월 31일까지",
		TranslatedText: "Employment Contract (Test)\n\nThis contract is between ○○○ Company and ○○○.\n\nArticle 1: From January 1, 2024 to December 31, 2024",
		Summary:        "1-year employment contract (2024) between ○○○ Company and employee. 3M won/month + 400% annual bonus, 40 hours/week in Gangnam, Seoul. (Sample data for testing)",
		KeyInfo: KeyInfo{
			Company: "○○○ Corporation",
			Date:    "January 1, 2024",
			Amount:  "3,000,000 KRW/month + 400% annual bonus",
			Period:  "2024.01.01 ~ 2024.12.31",
			Conditions: []string{
				"40 hours/week (Mon-Fri 09:00-18:00)",
				"4 major insurances",
				"15 days annual leave",
				"Location: Gangnam-gu, Seoul",
			},
		},
	},
}

func mockResult(sourceLang, targetLang string) *Result {
	result, ok := mockResults[sourceLang+"-"+targetLang]
	if !ok {
		result = mockResults["ko-vi"]
	}
	result.Confidence = 0.90
	result.SourceLang = sourceLang
	result.TargetLang = targetLang
	return &result
}
