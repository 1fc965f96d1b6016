package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is injectable for tests; the default reads from the
// terminal with echo disabled.
var readPassword = func() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RunWizard interactively collects first-run settings: the API key (hidden
// input), base URL and model, with defaults on empty input. An empty API
// key aborts the wizard; nothing is persisted here — the caller saves.
func RunWizard(in io.Reader, out io.Writer) (*Config, error) {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "  欢迎使用 TraceLog 拾迹！首次运行需要配置。")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "请前往你的 API 提供商获取 API Key。")

	fmt.Fprint(out, "请输入 API Key（输入时不显示）: ")
	apiKey, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("config: read API key: %w", err)
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	fmt.Fprint(out, "请输入 API Base URL（直接回车使用 OpenAI 官方地址）: ")
	baseURL, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("config: read base URL: %w", err)
	}

	fmt.Fprintf(out, "请输入模型名称（直接回车使用默认 %s）: ", DefaultModel)
	model, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("config: read model: %w", err)
	}

	cfg := &Config{APIKey: apiKey, BaseURL: baseURL, Model: model}
	cfg.applyDefaults()
	return cfg, nil
}

// readLine reads one trimmed line; EOF with no input is treated as an
// empty answer so piped input works.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
