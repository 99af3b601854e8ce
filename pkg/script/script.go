package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Script はソースファイルを表す
type Script struct {
	FileName string // ファイル名
	Path     string // 読み込んだパス
	Content  string // UTF-8に変換された内容
	Size     int64  // ファイルサイズ
	Encoding string // 検出したエンコーディング
}

// 検出されるエンコーディング名
const (
	EncodingUTF8     = "utf-8"
	EncodingUTF16    = "utf-16"
	EncodingShiftJIS = "shift_jis"
)

// Load 単一のソースファイルを読み込み、UTF-8に変換する
func Load(path string) (*Script, error) {
	// ファイル情報を取得
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	// ファイルを読み込む
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	content, enc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding of %s: %w", path, err)
	}

	return &Script{
		FileName: filepath.Base(path),
		Path:     path,
		Content:  content,
		Size:     info.Size(),
		Encoding: enc,
	}, nil
}

// Decode バイト列をUTF-8文字列に変換する
// BOM付きならBOMに従い、妥当なUTF-8ならそのまま、それ以外はShift-JISとして扱う
func Decode(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), EncodingUTF8, nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		// BOMOverrideがBOMを読んでバイトオーダーを決める
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		s, err := decodeWith(data, dec)
		return s, EncodingUTF16, err
	case utf8.Valid(data):
		return string(data), EncodingUTF8, nil
	}

	s, err := decodeWith(data, japanese.ShiftJIS.NewDecoder())
	if err != nil {
		return "", "", fmt.Errorf("failed to decode Shift-JIS: %w", err)
	}
	return s, EncodingShiftJIS, nil
}

func decodeWith(data []byte, dec *encoding.Decoder) (string, error) {
	reader := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(dec))
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
