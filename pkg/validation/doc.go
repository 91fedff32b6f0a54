/*
Package validation 외부 입력값(피드 원본 행, 설정 파일, API 요청)의 형식을 검사하는 함수들을 제공합니다.

주요 기능:

  - 상품/제휴 링크 URL 검증 (http, https 스키마만 허용)
  - 상품 이미지 URL 검증 (알려진 이미지 확장자 포함 여부)
  - CORS Origin, 포트, 호스트명 검증

URL 계열 함수는 bool을 반환하고, 설정 검증에 쓰이는 함수는 원인을 담은 error를 반환합니다.
*/
package validation
