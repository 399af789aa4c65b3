package abi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	paramTypeBytes = regexp.MustCompile(`^bytes([0-9]+)$`)
	paramTypeArray = regexp.MustCompile(`^(.*)\[([0-9]*)\]$`)
)

// coderOptions are the settings shared by all coders of a single call.
type coderOptions struct {
	coerce           CoerceFunc
	maxDepth         int
	ignoreUTF8Errors bool
}

// getParamCoder builds the coder tree for the given parameter type.
func getParamCoder(opts coderOptions, p ParamType) (coder, error) {
	return getParamCoderDepth(opts, p, 0)
}

func getParamCoderDepth(opts coderOptions, p ParamType, depth int) (coder, error) {
	if depth > opts.maxDepth {
		return nil, fmt.Errorf("%w: %q", ErrTooDeep, p.Type)
	}
	switch p.Type {
	case "address":
		return newAddressCoder(opts.coerce, p.Name), nil
	case "bool":
		return newBoolCoder(opts.coerce, p.Name), nil
	case "string":
		return newStringCoder(opts.coerce, opts.ignoreUTF8Errors, p.Name), nil
	case "bytes":
		return newDynamicBytesCoder(opts.coerce, p.Name), nil
	}

	if match := paramTypeNumber.FindStringSubmatch(p.Type); match != nil {
		var size = 256
		if match[2] != "" {
			var err error
			size, err = strconv.Atoi(match[2])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid %s bit length %q", ErrInvalidBitLength, match[1], match[2])
			}
		}
		if size == 0 || size > 256 || size%8 != 0 {
			return nil, fmt.Errorf("%w: invalid %s bit length %d", ErrInvalidBitLength, match[1], size)
		}
		return newNumberCoder(opts.coerce, size/8, match[1] == "int", p.Name), nil
	}

	if match := paramTypeBytes.FindStringSubmatch(p.Type); match != nil {
		size, err := strconv.Atoi(match[1])
		if err != nil || size == 0 || size > 32 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBytesLength, p.Type)
		}
		return newFixedBytesCoder(opts.coerce, size, p.Name), nil
	}

	if match := paramTypeArray.FindStringSubmatch(p.Type); match != nil {
		// Null elements take no space, so nothing would bound the count.
		if match[1] == "" {
			return nil, fmt.Errorf("%w: no array element type in %q", ErrInvalidType, p.Type)
		}
		var length = -1
		if match[2] != "" {
			var err error
			length, err = strconv.Atoi(match[2])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid array length in %q", ErrInvalidType, p.Type)
			}
		}
		elemType := p.Copy()
		elemType.Type = match[1]
		elem, err := getParamCoderDepth(opts, elemType, depth+1)
		if err != nil {
			return nil, err
		}
		return newArrayCoder(opts.coerce, elem, length, p.Name), nil
	}

	if strings.HasPrefix(p.Type, "tuple") {
		var coders = make([]coder, 0, len(p.Components))
		for i := range p.Components {
			c, err := getParamCoderDepth(opts, p.Components[i], depth+1)
			if err != nil {
				return nil, err
			}
			coders = append(coders, c)
		}
		return newTupleCoder(opts.coerce, coders, p.Name), nil
	}

	if p.Type == "" {
		return newNullCoder(opts.coerce, p.Name), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
}
