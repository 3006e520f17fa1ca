package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const searchPageHTML = `<html><body>
<div class="sub-article-detail">
  <a href="https://film2subtitle.com/subtitle/ozark/"><img src="https://film2subtitle.com/img/ozark.jpg"></a>
  <h1> زیرنویس سریال Ozark </h1>
  <ul>
    <li class="sub-meta-item"><span class="sub-meta-left">نام فیلم: Ozark</span><span class="sub-meta-right">زبان : فارسی</span></li>
    <li class="sub-meta-item"><span class="sub-meta-left">امتیاز: ۸.۴ از 10</span><span class="sub-meta-right">بازیگران: Jason Bateman, Laura Linney</span></li>
    <li class="sub-meta-item"><span class="sub-meta-left">بدون برچسب</span><span class="sub-meta-right">کشور: آمریکا</span></li>
    <li class="sub-meta-item"><span class="sub-meta-left">ناشناخته: ignored</span><span class="sub-meta-right">کیفیت: WEB-DL</span></li>
  </ul>
  <a href="https://www.imdb.com/title/tt5071412/">IMDb</a>
</div>
<div class="sub-article-detail"><p>advertisement</p></div>
<div class="sub-article-detail">
  <a href="https://film2subtitle.com/subtitle/dark/"><img src="https://film2subtitle.com/img/dark.jpg"></a>
  <h1>زیرنویس سریال Dark</h1>
</div>
<nav>
  <a class="page-numbers" href="https://film2subtitle.com/page/1/?s=ozark">1</a>
  <span class="page-numbers current">۲</span>
  <a class="page-numbers" href="https://film2subtitle.com/page/3/?s=ozark">3</a>
  <a class="next page-numbers" href="https://film2subtitle.com/page/3/?s=ozark">بعدی</a>
</nav>
</body></html>`

const moviePageHTML = `<html><body>
<div class="sub-article-detail">
  <a href="https://film2subtitle.com/subtitle/inception/"><img src="https://film2subtitle.com/img/inception.jpg"></a>
  <h1>زیرنویس فیلم Inception</h1>
  <ul><li class="sub-meta-item"><span class="sub-meta-left">زمان: 148 دقیقه</span><span class="sub-meta-right">فرمت زیرنویس: SRT</span></li></ul>
</div>
<div class="sub-download-box">
  <h3>دانلود زیرنویس</h3>
  <a href="https://film2subtitle.com/dl/Inception.2010.zip">دانلود</a>
  <a href="https://film2subtitle.com/dl/Inception-Trailer.mp4">تریلر</a>
  <a>بدون لینک</a>
</div>
</body></html>`

const seriesPageHTML = `<html><body>
<div class="sub-article-detail">
  <a href="https://film2subtitle.com/subtitle/ozark/"><img src="https://film2subtitle.com/img/ozark.jpg"></a>
  <h1>زیرنویس سریال Ozark</h1>
</div>
<div class="sub-download-box">
  <h3>فصل اول</h3>
  <a href="https://film2subtitle.com/dl/Ozark.S01.zip">کامل</a>
  <a href="https://film2subtitle.com/dl/Ozark.S01E01.zip">قسمت ۱</a>
  <h3>فصل دوم</h3>
  <a href="https://film2subtitle.com/dl/Ozark.S02E05.zip">قسمت ۵</a>
  <a href="https://film2subtitle.com/dl/ozark.s02e05.v2.zip">قسمت ۵ نسخه ۲</a>
  <a href="https://film2subtitle.com/dl/Ozark-extras.zip">اضافات</a>
</div>
</body></html>`

func mustDocument(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}
