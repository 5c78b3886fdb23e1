// Package sequence increments alphanumeric invoice numbers.
package sequence

// Next returns the successor of an invoice number, treating it as an
// odometer: the rightmost alphanumeric character is incremented, digits
// carry 9->0 and letters carry z->a / Z->A into the character on their
// left. Non-alphanumeric characters (separators like "-") never change and
// the carry passes over them. When every position carries, a new leading
// character is prepended: "1" before a digit, "a"/"A" before a letter.
// The empty string yields "1".
func Next(s string) string {
	if s == "" {
		return "1"
	}

	b := []byte(s)
	carry := true
	leftmost := -1 // leftmost alphanumeric position, for overflow
	for i := len(b) - 1; i >= 0 && carry; i-- {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			leftmost = i
			if c == '9' {
				b[i] = '0'
			} else {
				b[i] = c + 1
				carry = false
			}
		case c >= 'a' && c <= 'z':
			leftmost = i
			if c == 'z' {
				b[i] = 'a'
			} else {
				b[i] = c + 1
				carry = false
			}
		case c >= 'A' && c <= 'Z':
			leftmost = i
			if c == 'Z' {
				b[i] = 'A'
			} else {
				b[i] = c + 1
				carry = false
			}
		default:
			// separator: leave it, keep carrying leftward
		}
	}

	if !carry {
		return string(b)
	}
	if leftmost < 0 {
		// nothing incrementable at all
		return s + "1"
	}

	var head byte = '1'
	switch c := s[leftmost]; {
	case c >= 'a' && c <= 'z':
		head = 'a'
	case c >= 'A' && c <= 'Z':
		head = 'A'
	}
	return string(b[:leftmost]) + string(head) + string(b[leftmost:])
}
